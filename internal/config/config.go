package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
		// debug | info | warn | error
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// BaseURL se usa para armar los action de los formularios
		// (ej. http://localhost:3000). Sin trailing slash.
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	// Hydra apunta al admin API del authorization server.
	Hydra struct {
		AdminURL string `yaml:"admin_url"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"hydra"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	CSRF struct {
		CookieName string `yaml:"cookie_name"`
		TTL        string `yaml:"ttl"`
	} `yaml:"csrf"`

	// Flow agrupa la política de los flujos login/consent.
	Flow struct {
		// RememberFor en segundos cuando el usuario marca "remember".
		// 0 = nunca expira.
		RememberFor int `yaml:"remember_for"`
	} `yaml:"flow"`

	Directory struct {
		Kind   string `yaml:"kind"` // static | postgres
		Static struct {
			Emails   []string `yaml:"emails"`
			Password string   `yaml:"password"`
		} `yaml:"static"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"directory"`
}

// Load lee el YAML, aplica defaults y overrides por ENV.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:3000"
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Hydra.AdminURL == "" {
		c.Hydra.AdminURL = "http://localhost:4445"
	}
	if c.Hydra.Timeout == "" {
		c.Hydra.Timeout = "10s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "30m"
	}
	if c.CSRF.CookieName == "" {
		c.CSRF.CookieName = "csrf_token"
	}
	if c.CSRF.TTL == "" {
		c.CSRF.TTL = "30m"
	}
	if c.Flow.RememberFor == 0 {
		c.Flow.RememberFor = 3600
	}
	if c.Directory.Kind == "" {
		c.Directory.Kind = "static"
	}

	// ENV overrides (secretos y direcciones van mejor fuera del YAML)
	if v := os.Getenv("HYDRA_ADMIN_URL"); v != "" {
		c.Hydra.AdminURL = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.Server.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("DIRECTORY_PG_DSN"); v != "" {
		c.Directory.Postgres.DSN = v
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Cache.Kind != "memory" && c.Cache.Kind != "redis" {
		return fmt.Errorf("config: cache.kind inválido %q (memory|redis)", c.Cache.Kind)
	}
	if c.Cache.Kind == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("config: cache.redis.addr es requerido con kind=redis")
	}
	if c.Directory.Kind != "static" && c.Directory.Kind != "postgres" {
		return fmt.Errorf("config: directory.kind inválido %q (static|postgres)", c.Directory.Kind)
	}
	if c.Directory.Kind == "postgres" && c.Directory.Postgres.DSN == "" {
		return fmt.Errorf("config: directory.postgres.dsn es requerido con kind=postgres")
	}
	if _, err := time.ParseDuration(c.Hydra.Timeout); err != nil {
		return fmt.Errorf("config: hydra.timeout inválido: %w", err)
	}
	if _, err := time.ParseDuration(c.CSRF.TTL); err != nil {
		return fmt.Errorf("config: csrf.ttl inválido: %w", err)
	}
	if c.Flow.RememberFor < 0 {
		return fmt.Errorf("config: flow.remember_for no puede ser negativo")
	}
	return nil
}

// HydraTimeout retorna el timeout parseado (validado en Load).
func (c *Config) HydraTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Hydra.Timeout)
	return d
}

// CSRFTTL retorna el TTL parseado del token anti-forgery.
func (c *Config) CSRFTTL() time.Duration {
	d, _ := time.ParseDuration(c.CSRF.TTL)
	return d
}

// MemoryTTL retorna el TTL default del cache en memoria.
func (c *Config) MemoryTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.Memory.DefaultTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}
