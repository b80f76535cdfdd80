package entities

import (
	"railcanvas/domain/core/valueobjects"
)

// Node is a typed service box on the canvas. Values are treated as
// immutable: mutation operations return a replacement node instead of
// writing through a shared reference, so holders of an earlier value
// never observe in-place changes.
type Node struct {
	ID          string                `json:"id"`
	Kind        NodeKind              `json:"type"`
	Position    valueobjects.Position `json:"position"`
	Title       string                `json:"title"`
	TechUsed    []string              `json:"techUsed"`
	Usecase     string                `json:"usecase"`
	Description string                `json:"description"`
	CustomColor string                `json:"customColor,omitempty"`
	Disabled    bool                  `json:"disabled,omitempty"`
}

// NodePatch is a partial field set merged onto a node, last-write-wins.
// Nil fields leave the corresponding node field untouched.
type NodePatch struct {
	Title       *string   `json:"title,omitempty"`
	TechUsed    *[]string `json:"techUsed,omitempty"`
	Usecase     *string   `json:"usecase,omitempty"`
	Description *string   `json:"description,omitempty"`
	CustomColor *string   `json:"customColor,omitempty"`
}

// NewNode creates a node seeded with the kind's default metadata
func NewNode(kind NodeKind, position valueobjects.Position) Node {
	defaults := DefaultsFor(kind)
	return Node{
		ID:          valueobjects.NewNodeID(),
		Kind:        kind,
		Position:    position,
		Title:       defaults.Title,
		TechUsed:    append([]string(nil), defaults.TechUsed...),
		Usecase:     defaults.Usecase,
		Description: defaults.Description,
	}
}

// Merge returns a copy of the node with the patch applied
func (n Node) Merge(patch NodePatch) Node {
	out := n.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.TechUsed != nil {
		out.TechUsed = append([]string(nil), *patch.TechUsed...)
	}
	if patch.Usecase != nil {
		out.Usecase = *patch.Usecase
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.CustomColor != nil {
		out.CustomColor = *patch.CustomColor
	}
	return out
}

// Duplicate returns a copy with a fresh id, offset placement and a
// " Copy" title suffix
func (n Node) Duplicate() Node {
	out := n.Clone()
	out.ID = valueobjects.NewNodeID()
	out.Position = n.Position.Translate(50, 50)
	out.Title = n.Title + " Copy"
	return out
}

// ToggleDisabled returns a copy with the disabled flag flipped
func (n Node) ToggleDisabled() Node {
	out := n.Clone()
	out.Disabled = !n.Disabled
	return out
}

// MoveTo returns a copy at the given position
func (n Node) MoveTo(position valueobjects.Position) Node {
	out := n.Clone()
	out.Position = position
	return out
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	out := n
	out.TechUsed = append([]string(nil), n.TechUsed...)
	return out
}
