// Package metricsvc exposes the service's Prometheus instrumentation.
// Collectors are registered against the default registry and served on the
// debug mux next to expvar and pprof.
package metricsvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "earlysignal"

var (
	predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Probability estimates served, by source (model or fallback).",
		},
		[]string{"source"},
	)

	analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyzed_students_total",
			Help:      "Students processed by batch risk analysis, by outcome.",
		},
		[]string{"outcome"},
	)

	alerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Risk alert dispatch attempts, by status.",
		},
		[]string{"status"},
	)
)

func PredictionServed(source string) { predictions.WithLabelValues(source).Inc() }
func StudentAnalyzed(outcome string) { analyses.WithLabelValues(outcome).Inc() }
func AlertDispatched(status string)  { alerts.WithLabelValues(status).Inc() }

// Handler serves the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
