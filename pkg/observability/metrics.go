package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	MutationsTotal  *prometheus.CounterVec
	SavesTotal      *prometheus.CounterVec
	ProposalsTotal  *prometheus.CounterVec
	AssistantTotal  *prometheus.CounterVec
	CurrentNodes    prometheus.Gauge
	CurrentEdges    prometheus.Gauge
	CurrentSections prometheus.Gauge
}

// NewMetrics registers the application collectors on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railcanvas",
			Name:      "graph_mutations_total",
			Help:      "Graph store mutations by operation",
		}, []string{"operation"}),
		SavesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railcanvas",
			Name:      "project_saves_total",
			Help:      "Project snapshot saves by trigger and status",
		}, []string{"trigger", "status"}),
		ProposalsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railcanvas",
			Name:      "proposals_total",
			Help:      "Change-proposal gateway transitions",
		}, []string{"event"}),
		AssistantTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railcanvas",
			Name:      "assistant_requests_total",
			Help:      "Advisory source requests by transport mode",
		}, []string{"mode"}),
		CurrentNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "railcanvas",
			Name:      "graph_nodes",
			Help:      "Nodes in the current working set",
		}),
		CurrentEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "railcanvas",
			Name:      "graph_edges",
			Help:      "Edges in the current working set",
		}),
		CurrentSections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "railcanvas",
			Name:      "graph_sections",
			Help:      "Sections in the current working set",
		}),
	}
}

// NewNopMetrics returns metrics backed by a throwaway registry, for tests
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
