// Package metrics expone contadores Prometheus del POS: confirmaciones de cuenta,
// resultados del parser y operaciones del carrito.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kirana"

// Metrics agrupa los colectores sobre un registro propio (no el global).
type Metrics struct {
	registry       *prometheus.Registry
	commits        *prometheus.CounterVec
	commitDuration *prometheus.HistogramVec
	parses         *prometheus.CounterVec
	cartOps        *prometheus.CounterVec
	activeCarts    prometheus.Gauge
}

// New registra los colectores de la aplicación y los de proceso/runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "commits_total",
			Help:      "Confirmaciones de cuenta por resultado.",
		}, []string{"outcome"}),
		commitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "commit_duration_seconds",
			Help:      "Duración de la confirmación de cuenta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "parses_total",
			Help:      "Líneas de pedido parseadas por resultado (matched, unmatched, assisted).",
		}, []string{"result"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Operaciones sobre carritos por tipo y resultado.",
		}, []string{"op", "outcome"}),
		activeCarts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "active_sessions",
			Help:      "Sesiones de carrito abiertas.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.commits, m.commitDuration, m.parses, m.cartOps, m.activeCarts,
	)
	return m
}

// ObserveCommit registra el resultado y la duración de una confirmación.
func (m *Metrics) ObserveCommit(outcome string, d time.Duration) {
	m.commits.WithLabelValues(outcome).Inc()
	m.commitDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveParse registra el resultado de parsear una línea.
func (m *Metrics) ObserveParse(result string) {
	m.parses.WithLabelValues(result).Inc()
}

// ObserveCartOp registra una operación de carrito.
func (m *Metrics) ObserveCartOp(op, outcome string) {
	m.cartOps.WithLabelValues(op, outcome).Inc()
}

// SetActiveCarts fija el número de sesiones abiertas.
func (m *Metrics) SetActiveCarts(n int) {
	m.activeCarts.Set(float64(n))
}

// Registry registro subyacente (tests y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
