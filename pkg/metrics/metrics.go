// Package metrics expone los colectores Prometheus del servicio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores e histogramas de las corridas de reproducción y extracción.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	recordsApplied prometheus.Counter
	runDuration    *prometheus.HistogramVec
}

// New crea un registro propio con los colectores del servicio y los del
// runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bulkledger_runs_total",
			Help: "Corridas por operación (replay/extract) y resultado (ok/error).",
		}, []string{"operation", "result"}),
		recordsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulkledger_records_applied_total",
			Help: "Registros del CSV de movimientos aplicados al libro.",
		}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bulkledger_run_duration_seconds",
			Help:    "Duración de cada corrida.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// ObserveRun registra el resultado y la duración de una corrida.
func (m *Metrics) ObserveRun(operation string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runsTotal.WithLabelValues(operation, result).Inc()
	m.runDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddApplied suma registros aplicados en una corrida de reproducción.
func (m *Metrics) AddApplied(n int) {
	m.recordsApplied.Add(float64(n))
}

// Handler expone el registro en formato de texto Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
