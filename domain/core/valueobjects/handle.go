package valueobjects

import "strings"

// Handle names one of the four directional attachment points on a node.
// The canvas emits handles like "top", "bottom-source" or "left-target";
// classification only cares about the directional component, so matching
// is by substring.
type Handle string

// IsTop reports whether the handle attaches at the top of the node
func (h Handle) IsTop() bool {
	return strings.Contains(string(h), "top")
}

// IsBottom reports whether the handle attaches at the bottom of the node
func (h Handle) IsBottom() bool {
	return strings.Contains(string(h), "bottom")
}

// Direction classifies how an edge runs between its two endpoints
type Direction string

const (
	DirectionHorizontal   Direction = "horizontal"
	DirectionVerticalUp   Direction = "vertical-up"
	DirectionVerticalDown Direction = "vertical-down"
)
