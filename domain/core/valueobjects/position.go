package valueobjects

import "math"

// Position is a value object representing canvas coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Translate returns a new position moved by the given offsets
func (p Position) Translate(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.X-other.X) < epsilon && math.Abs(p.Y-other.Y) < epsilon
}

// Size is a value object representing the extent of a section rectangle
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
