package services

import (
	"go.uber.org/zap"

	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
)

// ConnectionGesture is the raw drag-connect input from the canvas
type ConnectionGesture struct {
	SourceID     string              `json:"source"`
	TargetID     string              `json:"target"`
	SourceHandle valueobjects.Handle `json:"sourceHandle"`
	TargetHandle valueobjects.Handle `json:"targetHandle"`
}

// ConnectionService turns drag-connect gestures into validated, styled
// edges. Self-loops and parallel edges between the same pair are
// deliberately not rejected; multiple differently-labeled relationships
// between two services are legitimate.
type ConnectionService struct {
	logger *zap.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(logger *zap.Logger) *ConnectionService {
	return &ConnectionService{logger: logger}
}

// Resolve validates the gesture against the node collection and builds
// the resulting edge. Gestures naming unknown endpoints are silently
// ignored: ok is false and no edge is produced.
func (s *ConnectionService) Resolve(gesture ConnectionGesture, nodes []entities.Node) (entities.Edge, bool) {
	source, sourceOK := findNode(nodes, gesture.SourceID)
	target, targetOK := findNode(nodes, gesture.TargetID)
	if !sourceOK || !targetOK {
		s.logger.Debug("Ignoring connection with unresolved endpoint",
			zap.String("source", gesture.SourceID),
			zap.String("target", gesture.TargetID),
		)
		return entities.Edge{}, false
	}

	edge := entities.Edge{
		ID:           valueobjects.NewEdgeID(gesture.SourceID, gesture.TargetID),
		Source:       gesture.SourceID,
		Target:       gesture.TargetID,
		SourceHandle: gesture.SourceHandle,
		TargetHandle: gesture.TargetHandle,
		Label:        entities.DefaultEdgeLabel,
		Direction:    classify(gesture, source, target),
		Type:         entities.DefaultEdgeShape,
		Animated:     false,
		Style: entities.EdgeStyle{
			Stroke:      entities.DefaultEdgeStroke,
			StrokeWidth: entities.DefaultEdgeWidth,
			Opacity:     entities.FullEdgeOpacity,
		},
	}
	return edge, true
}

// classify determines the edge direction. Explicit handle hints take
// precedence over position-derived inference.
func classify(gesture ConnectionGesture, source, target entities.Node) valueobjects.Direction {
	switch {
	case gesture.SourceHandle.IsBottom() || gesture.TargetHandle.IsTop():
		return valueobjects.DirectionVerticalDown
	case gesture.SourceHandle.IsTop() || gesture.TargetHandle.IsBottom():
		return valueobjects.DirectionVerticalUp
	case source.Position.Y < target.Position.Y:
		return valueobjects.DirectionVerticalDown
	case source.Position.Y > target.Position.Y:
		return valueobjects.DirectionVerticalUp
	default:
		return valueobjects.DirectionHorizontal
	}
}

func findNode(nodes []entities.Node, id string) (entities.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return entities.Node{}, false
}
