package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdge_Touches(t *testing.T) {
	// Arrange
	edge := Edge{ID: "e1", Source: "a", Target: "b"}

	// Assert
	assert.True(t, edge.Touches("a"))
	assert.True(t, edge.Touches("b"))
	assert.False(t, edge.Touches("c"))
}

func TestEdge_WithOpacity_DoesNotMutateReceiver(t *testing.T) {
	// Arrange
	edge := Edge{ID: "e1", Style: EdgeStyle{Opacity: FullEdgeOpacity}}

	// Act
	faded := edge.WithOpacity(FadedEdgeOpacity)

	// Assert
	assert.InDelta(t, FadedEdgeOpacity, faded.Style.Opacity, 0.001)
	assert.InDelta(t, FullEdgeOpacity, edge.Style.Opacity, 0.001)
}

func TestChangeSet_IsEmpty(t *testing.T) {
	assert.True(t, ChangeSet{}.IsEmpty())
	assert.False(t, ChangeSet{Nodes: []Node{}}.IsEmpty())
	assert.False(t, ChangeSet{Edges: []Edge{{ID: "e"}}}.IsEmpty())
}

func TestChangeSet_JSONDistinguishesAbsentFromEmpty(t *testing.T) {
	// Arrange
	var withEmpty, withAbsent ChangeSet

	// Act
	require.NoError(t, json.Unmarshal([]byte(`{"nodes":[]}`), &withEmpty))
	require.NoError(t, json.Unmarshal([]byte(`{}`), &withAbsent))

	// Assert
	assert.NotNil(t, withEmpty.Nodes)
	assert.Nil(t, withAbsent.Nodes)
}
