package entities

import (
	"railcanvas/domain/core/valueobjects"
)

// Default presentation applied by the connection protocol. Stored on the
// edge but derived, not part of the semantic contract.
const (
	DefaultEdgeLabel  = "API"
	DefaultEdgeStroke = "#ffffff"
	DefaultEdgeWidth  = 2.0
	DefaultEdgeShape  = "smoothstep"

	FadedEdgeOpacity = 0.3
	FullEdgeOpacity  = 1.0
)

// EdgeStyle is the derived visual state of an edge
type EdgeStyle struct {
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// Edge is a directed, labeled connection between two node handles
type Edge struct {
	ID           string                 `json:"id"`
	Source       string                 `json:"source"`
	Target       string                 `json:"target"`
	SourceHandle valueobjects.Handle    `json:"sourceHandle,omitempty"`
	TargetHandle valueobjects.Handle    `json:"targetHandle,omitempty"`
	Label        string                 `json:"label"`
	Direction    valueobjects.Direction `json:"direction"`
	Type         string                 `json:"type"`
	Animated     bool                   `json:"animated"`
	Style        EdgeStyle              `json:"style"`
}

// Touches reports whether the edge has the node as either endpoint
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// WithLabel returns a copy carrying the new label
func (e Edge) WithLabel(label string) Edge {
	out := e
	out.Label = label
	return out
}

// WithOpacity returns a copy with the given stroke opacity
func (e Edge) WithOpacity(opacity float64) Edge {
	out := e
	out.Style.Opacity = opacity
	return out
}
