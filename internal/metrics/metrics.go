package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Métricas de flujos y del admin API. Viven en un package standalone para
// evitar ciclos de import entre hydra (cliente) y los packages HTTP.

var (
	FlowOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_outcomes_total",
		Help: "Resultados terminales de los flujos login/consent",
	}, []string{"flow", "outcome"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "provider_request_duration_seconds",
		Help:    "Latencia de llamadas al admin API del authorization server",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	ProviderErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_errors_total",
		Help: "Fallos de llamadas al admin API",
	}, []string{"op"})
)

// Register registra las métricas de flujo en el registry dado (default si nil).
// Tolera doble registro para no romper en tests.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{FlowOutcomes, ProviderRequestDuration, ProviderErrors} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// ObserveProviderCall registra latencia (y fallo, si hubo) de una llamada al
// admin API.
func ObserveProviderCall(op string, d time.Duration, err error) {
	ProviderRequestDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		ProviderErrors.WithLabelValues(op).Inc()
	}
}

// ObserveFlowOutcome registra el estado terminal de un flujo.
func ObserveFlowOutcome(flow, outcome string) {
	FlowOutcomes.WithLabelValues(flow, outcome).Inc()
}
