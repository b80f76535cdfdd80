package proposals

import (
	"sync"

	"go.uber.org/zap"

	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	"railcanvas/pkg/observability"
)

// Gateway holds at most one pending change-set awaiting explicit user
// confirmation. A newer proposal replaces an unconfirmed older one,
// last-proposal-wins. Applying merges the proposal into the graph store
// exactly once, using only the collections present in the proposal; the
// gateway never validates proposal semantics.
type Gateway struct {
	mu      sync.Mutex
	pending *entities.ChangeSet

	store   *store.GraphStore
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGateway creates an idle gateway
func NewGateway(graphStore *store.GraphStore, logger *zap.Logger, metrics *observability.Metrics) *Gateway {
	return &Gateway{
		store:   graphStore,
		logger:  logger,
		metrics: metrics,
	}
}

// Propose holds the change-set as the pending proposal, replacing any
// unconfirmed predecessor.
func (g *Gateway) Propose(changes entities.ChangeSet) {
	g.mu.Lock()
	superseded := g.pending != nil
	clone := changes
	g.pending = &clone
	g.mu.Unlock()

	if superseded {
		g.metrics.ProposalsTotal.WithLabelValues("superseded").Inc()
		g.logger.Debug("Pending proposal superseded")
	}
	g.metrics.ProposalsTotal.WithLabelValues("proposed").Inc()
}

// Pending returns the currently held proposal, if any
func (g *Gateway) Pending() (entities.ChangeSet, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return entities.ChangeSet{}, false
	}
	return *g.pending, true
}

// Apply merges the pending proposal into the graph store and clears the
// slot. Collections absent from the proposal are left untouched.
// Confirming with an empty slot is a no-op; application happens at most
// once per proposal.
func (g *Gateway) Apply() bool {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	if pending == nil {
		return false
	}

	g.store.ReplaceAll(pending.Nodes, pending.Edges, pending.Sections)
	g.metrics.ProposalsTotal.WithLabelValues("applied").Inc()
	g.logger.Info("Proposal applied",
		zap.Int("nodes", len(pending.Nodes)),
		zap.Int("edges", len(pending.Edges)),
		zap.Int("sections", len(pending.Sections)),
	)
	return true
}

// Discard drops the pending proposal without applying it
func (g *Gateway) Discard() {
	g.mu.Lock()
	dropped := g.pending != nil
	g.pending = nil
	g.mu.Unlock()

	if dropped {
		g.metrics.ProposalsTotal.WithLabelValues("discarded").Inc()
	}
}
