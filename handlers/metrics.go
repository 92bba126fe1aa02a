package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prepedido/estimate"
	"prepedido/services"
)

// Metrics holds the Prometheus collectors for the pre-order. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	totals    *prometheus.GaugeVec
	materials prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prepedido_mutations_total",
			Help: "Pre-order mutations by operation and result.",
		}, []string{"op", "result"}),
		totals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prepedido_tree_total",
			Help: "Current pre-order total by kind (order or budget).",
		}, []string{"kind"}),
		materials: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prepedido_materials",
			Help: "Number of material lines in the pre-order.",
		}),
	}
	m.registry.MustRegister(m.mutations, m.totals, m.materials)
	return m
}

// Observe refreshes the tree gauges. It matches estimate.Observer so it can
// be registered on the store.
func (m *Metrics) Observe(_ estimate.Change, tree estimate.Tree) {
	m.SetTree(tree)
}

func (m *Metrics) SetTree(tree estimate.Tree) {
	if m == nil {
		return
	}
	t := services.TreeTotals(tree)
	m.totals.WithLabelValues("order").Set(t.Order)
	m.totals.WithLabelValues("budget").Set(t.Budget)
	m.materials.Set(float64(services.CountMaterials(tree)))
}

// Mutation counts one mutation request. result is "applied", "noop",
// "rejected" or "error".
func (m *Metrics) Mutation(op, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
