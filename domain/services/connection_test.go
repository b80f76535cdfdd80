package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
)

func nodesAt(sourceY, targetY float64) []entities.Node {
	return []entities.Node{
		{ID: "src", Position: valueobjects.Position{X: 100, Y: sourceY}},
		{ID: "tgt", Position: valueobjects.Position{X: 400, Y: targetY}},
	}
}

func TestConnectionService_Resolve_BuildsStyledEdge(t *testing.T) {
	// Arrange
	service := NewConnectionService(zap.NewNop())
	gesture := ConnectionGesture{SourceID: "src", TargetID: "tgt"}

	// Act
	edge, ok := service.Resolve(gesture, nodesAt(200, 200))

	// Assert
	require.True(t, ok)
	assert.Equal(t, "src", edge.Source)
	assert.Equal(t, "tgt", edge.Target)
	assert.Equal(t, entities.DefaultEdgeLabel, edge.Label)
	assert.Equal(t, entities.DefaultEdgeShape, edge.Type)
	assert.Equal(t, entities.DefaultEdgeStroke, edge.Style.Stroke)
	assert.InDelta(t, entities.DefaultEdgeWidth, edge.Style.StrokeWidth, 0.001)
	assert.InDelta(t, entities.FullEdgeOpacity, edge.Style.Opacity, 0.001)
	assert.True(t, strings.HasPrefix(edge.ID, "edge-src-tgt-"))
}

func TestConnectionService_Resolve_UnknownEndpointIsIgnored(t *testing.T) {
	// Arrange
	service := NewConnectionService(zap.NewNop())

	// Act
	_, sourceMissing := service.Resolve(ConnectionGesture{SourceID: "ghost", TargetID: "tgt"}, nodesAt(0, 0))
	_, targetMissing := service.Resolve(ConnectionGesture{SourceID: "src", TargetID: "ghost"}, nodesAt(0, 0))

	// Assert
	assert.False(t, sourceMissing)
	assert.False(t, targetMissing)
}

func TestConnectionService_Resolve_SelfLoopIsPermitted(t *testing.T) {
	// Arrange
	service := NewConnectionService(zap.NewNop())
	nodes := []entities.Node{{ID: "src", Position: valueobjects.Position{X: 100, Y: 100}}}

	// Act
	edge, ok := service.Resolve(ConnectionGesture{SourceID: "src", TargetID: "src"}, nodes)

	// Assert
	require.True(t, ok)
	assert.Equal(t, edge.Source, edge.Target)
}

func TestConnectionService_Resolve_DirectionClassification(t *testing.T) {
	tests := []struct {
		name     string
		gesture  ConnectionGesture
		sourceY  float64
		targetY  float64
		expected valueobjects.Direction
	}{
		{
			name:     "source above target flows down",
			gesture:  ConnectionGesture{SourceID: "src", TargetID: "tgt"},
			sourceY:  200,
			targetY:  500,
			expected: valueobjects.DirectionVerticalDown,
		},
		{
			name:     "source below target flows up",
			gesture:  ConnectionGesture{SourceID: "src", TargetID: "tgt"},
			sourceY:  500,
			targetY:  200,
			expected: valueobjects.DirectionVerticalUp,
		},
		{
			name:     "same height is horizontal",
			gesture:  ConnectionGesture{SourceID: "src", TargetID: "tgt"},
			sourceY:  300,
			targetY:  300,
			expected: valueobjects.DirectionHorizontal,
		},
		{
			name: "bottom source handle wins over positions",
			gesture: ConnectionGesture{
				SourceID: "src", TargetID: "tgt",
				SourceHandle: "bottom-source",
			},
			sourceY:  500,
			targetY:  200,
			expected: valueobjects.DirectionVerticalDown,
		},
		{
			name: "top target handle wins over positions",
			gesture: ConnectionGesture{
				SourceID: "src", TargetID: "tgt",
				TargetHandle: "top",
			},
			sourceY:  500,
			targetY:  200,
			expected: valueobjects.DirectionVerticalDown,
		},
		{
			name: "top source handle forces upward",
			gesture: ConnectionGesture{
				SourceID: "src", TargetID: "tgt",
				SourceHandle: "top-source",
			},
			sourceY:  200,
			targetY:  500,
			expected: valueobjects.DirectionVerticalUp,
		},
		{
			name: "bottom target handle forces upward",
			gesture: ConnectionGesture{
				SourceID: "src", TargetID: "tgt",
				TargetHandle: "bottom",
			},
			sourceY:  200,
			targetY:  500,
			expected: valueobjects.DirectionVerticalUp,
		},
	}

	service := NewConnectionService(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, ok := service.Resolve(tt.gesture, nodesAt(tt.sourceY, tt.targetY))
			require.True(t, ok)
			assert.Equal(t, tt.expected, edge.Direction)
		})
	}
}
