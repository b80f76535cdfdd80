package proposals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
	"railcanvas/domain/services"
	"railcanvas/pkg/observability"
)

func newTestGateway() (*Gateway, *store.GraphStore) {
	logger := zap.NewNop()
	graphStore := store.NewGraphStore(services.NewConnectionService(logger), logger, observability.NewNopMetrics())
	return NewGateway(graphStore, logger, observability.NewNopMetrics()), graphStore
}

func changeSetWithNode(title string) entities.ChangeSet {
	node := entities.NewNode(entities.KindDatabase, valueobjects.Position{X: 100, Y: 300})
	node.Title = title
	return entities.ChangeSet{Nodes: []entities.Node{node}}
}

func TestGateway_Propose_LastProposalWins(t *testing.T) {
	// Arrange
	gateway, graphStore := newTestGateway()

	// Act: propose X, then Y, then confirm
	gateway.Propose(changeSetWithNode("X"))
	gateway.Propose(changeSetWithNode("Y"))
	applied := gateway.Apply()

	// Assert: only Y's effect is observable
	require.True(t, applied)
	snapshot := graphStore.Snapshot()
	require.Len(t, snapshot.Nodes, 1)
	assert.Equal(t, "Y", snapshot.Nodes[0].Title)
}

func TestGateway_Apply_AtMostOnce(t *testing.T) {
	// Arrange
	gateway, graphStore := newTestGateway()
	gateway.Propose(changeSetWithNode("X"))

	// Act
	first := gateway.Apply()
	graphStore.ReplaceAll([]entities.Node{}, nil, nil)
	second := gateway.Apply()

	// Assert: the second confirm is a no-op
	assert.True(t, first)
	assert.False(t, second)
	assert.Empty(t, graphStore.Snapshot().Nodes)
}

func TestGateway_Apply_EmptySlotIsNoOp(t *testing.T) {
	// Arrange
	gateway, graphStore := newTestGateway()
	graphStore.AddNode(entities.KindAPI, &valueobjects.Position{})

	// Act
	applied := gateway.Apply()

	// Assert
	assert.False(t, applied)
	assert.Len(t, graphStore.Snapshot().Nodes, 1)
}

func TestGateway_Apply_AbsentCollectionsLeftUntouched(t *testing.T) {
	// Arrange
	gateway, graphStore := newTestGateway()
	a := graphStore.AddNode(entities.KindAPI, &valueobjects.Position{X: 0, Y: 0})
	b := graphStore.AddNode(entities.KindDatabase, &valueobjects.Position{X: 0, Y: 100})
	graphStore.Connect(services.ConnectionGesture{SourceID: a.ID, TargetID: b.ID})

	// Act: proposal carries nodes only
	gateway.Propose(changeSetWithNode("replacement"))
	gateway.Apply()

	// Assert: edges survive the partial application
	snapshot := graphStore.Snapshot()
	assert.Len(t, snapshot.Nodes, 1)
	assert.Len(t, snapshot.Edges, 1)
}

func TestGateway_Discard(t *testing.T) {
	// Arrange
	gateway, graphStore := newTestGateway()
	gateway.Propose(changeSetWithNode("X"))

	// Act
	gateway.Discard()

	// Assert
	_, hasPending := gateway.Pending()
	assert.False(t, hasPending)
	assert.False(t, gateway.Apply())
	assert.Empty(t, graphStore.Snapshot().Nodes)
}

func TestGateway_Pending(t *testing.T) {
	// Arrange
	gateway, _ := newTestGateway()

	// Assert: idle gateway
	_, hasPending := gateway.Pending()
	assert.False(t, hasPending)

	// Act
	gateway.Propose(changeSetWithNode("X"))

	// Assert
	pending, hasPending := gateway.Pending()
	require.True(t, hasPending)
	require.Len(t, pending.Nodes, 1)
	assert.Equal(t, "X", pending.Nodes[0].Title)
}
