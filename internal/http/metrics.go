package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dropDatabas3/hellogrant/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge
)

// RegisterMetrics inicializa las métricas HTTP (y las de flujo del package
// metrics) y devuelve el handler para /metrics. Registra en el registry dado,
// o el default si es nil; tolera doble registro para no romper en tests.
func RegisterMetrics(registry prometheus.Registerer) (http.Handler, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		})
	})

	for _, c := range []prometheus.Collector{httpRequestsTotal, httpRequestDuration, httpInflight} {
		if err := registry.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	if err := metrics.Register(registry); err != nil {
		return nil, err
	}

	return promhttp.Handler(), nil
}

// ObserveRequest alimenta las métricas HTTP (lo llama el middleware de logging
// que ya captura status y duración).
func ObserveRequest(method, path string, status int, d time.Duration) {
	if httpRequestsTotal != nil {
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	}
	if httpRequestDuration != nil {
		httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
	}
}

// InflightAdd ajusta el gauge de requests en vuelo.
func InflightAdd(delta float64) {
	if httpInflight != nil {
		httpInflight.Add(delta)
	}
}
