// Prometheus instrumentation for provider calls. Counted at the chain level
// so every attempt is observed, including those absorbed by fallback.
package ai

import "github.com/prometheus/client_golang/prometheus"

var providerAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "generation_provider_attempts_total",
		Help: "Provider attempts by kind (text/image), provider, and outcome (ok/error).",
	},
	[]string{"kind", "provider", "outcome"},
)

func init() {
	prometheus.MustRegister(providerAttempts)
}

func observeAttempt(kind, provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerAttempts.WithLabelValues(kind, provider, outcome).Inc()
}
