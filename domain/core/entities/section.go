package entities

import (
	"math/rand"

	"railcanvas/domain/core/valueobjects"
)

// sectionColors is the palette new sections draw from
var sectionColors = []string{"#8b5cf6", "#06b6d4", "#10b981", "#f59e0b", "#ef4444", "#ec4899"}

// Section is a free-floating visual grouping rectangle. Membership of
// nodes is implicit spatial containment; sections hold no references to
// nodes or edges and have a fully independent lifecycle.
type Section struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       string                `json:"color"`
	Position    valueobjects.Position `json:"position"`
	Size        valueobjects.Size     `json:"size"`
	IsCollapsed bool                  `json:"isCollapsed"`
}

// SectionPatch is a partial field set merged onto a section
type SectionPatch struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Color       *string                `json:"color,omitempty"`
	Position    *valueobjects.Position `json:"position,omitempty"`
	Size        *valueobjects.Size     `json:"size,omitempty"`
	IsCollapsed *bool                  `json:"isCollapsed,omitempty"`
}

// NewSection creates a section with the original defaults: random
// palette color, random placement, 400x300 extent.
func NewSection() Section {
	return Section{
		ID:          valueobjects.NewSectionID(),
		Title:       "New Section",
		Description: "Organize related services here",
		Color:       sectionColors[rand.Intn(len(sectionColors))],
		Position: valueobjects.Position{
			X: rand.Float64()*300 + 100,
			Y: rand.Float64()*200 + 100,
		},
		Size:        valueobjects.Size{Width: 400, Height: 300},
		IsCollapsed: false,
	}
}

// Merge returns a copy of the section with the patch applied
func (s Section) Merge(patch SectionPatch) Section {
	out := s
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Color != nil {
		out.Color = *patch.Color
	}
	if patch.Position != nil {
		out.Position = *patch.Position
	}
	if patch.Size != nil {
		out.Size = *patch.Size
	}
	if patch.IsCollapsed != nil {
		out.IsCollapsed = *patch.IsCollapsed
	}
	return out
}
