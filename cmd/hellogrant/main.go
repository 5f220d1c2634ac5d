package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/hellogrant/internal/app"
	"github.com/dropDatabas3/hellogrant/internal/cache"
	cachememory "github.com/dropDatabas3/hellogrant/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/hellogrant/internal/cache/redis"
	"github.com/dropDatabas3/hellogrant/internal/config"
	"github.com/dropDatabas3/hellogrant/internal/directory"
	httpx "github.com/dropDatabas3/hellogrant/internal/http"
	"github.com/dropDatabas3/hellogrant/internal/http/router"
	"github.com/dropDatabas3/hellogrant/internal/hydra"
	"github.com/dropDatabas3/hellogrant/internal/observability/logger"
)

func main() {
	// .env primero: la config puede leer overrides de ahí
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "ruta del YAML de configuración")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.example.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "hellogrant",
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cache (tokens anti-forgery one-shot)
	var store cache.Cache
	switch cfg.Cache.Kind {
	case "redis":
		store = cacheredis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	default:
		store = cachememory.New(cfg.MemoryTTL())
	}

	// Credential validator
	var dir directory.Validator
	var checkDir func(ctx context.Context) error
	switch cfg.Directory.Kind {
	case "postgres":
		pg, err := directory.NewPostgres(ctx, cfg.Directory.Postgres.DSN)
		if err != nil {
			log.Fatalf("directory: %v", err)
		}
		defer pg.Close()
		dir = pg
		checkDir = pg.Ping
	default:
		dir = directory.NewStatic(cfg.Directory.Static.Emails, cfg.Directory.Static.Password)
	}

	metricsHandler, err := httpx.RegisterMetrics(nil)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	// Cliente del admin API: construido acá e inyectado, nada global.
	container := &app.Container{
		Provider:  hydra.New(cfg.Hydra.AdminURL, cfg.HydraTimeout()),
		Directory: dir,
		Cache:     store,
	}

	h := router.New(container, router.Options{
		BaseURL:        cfg.Server.BaseURL,
		CSRFCookieName: cfg.CSRF.CookieName,
		CSRFTTL:        cfg.CSRFTTL(),
		RememberFor:    cfg.Flow.RememberFor,
		Metrics:        metricsHandler,
		CheckDirectory: checkDir,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lg.Info("hellogrant up",
		zap.String("addr", cfg.Server.Addr),
		logger.Component("server"),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server terminated", logger.Err(err))
		os.Exit(1)
	}
	lg.Info("bye")
}
