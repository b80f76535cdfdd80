package entities

import (
	"time"

	"railcanvas/domain/core/valueobjects"
)

// Project owns exactly one graph snapshot. Exactly one project is
// current at a time; the graph store's working collections are a live
// view of it.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProject creates a project with empty collections
func NewProject(name string) Project {
	return Project{
		ID:        valueobjects.NewProjectID(),
		Name:      name,
		Nodes:     []Node{},
		Edges:     []Edge{},
		Sections:  []Section{},
		CreatedAt: time.Now(),
	}
}

// DefaultProject seeds the starter canvas shown on first launch
func DefaultProject() Project {
	return Project{
		ID:   "default",
		Name: "My First Project",
		Nodes: []Node{
			{
				ID:          "1",
				Kind:        KindDatabase,
				Position:    valueobjects.Position{X: 250, Y: 200},
				Title:       "Postgres",
				TechUsed:    []string{"PostgreSQL"},
				Usecase:     "Primary database",
				Description: "Main application database for user data and transactions",
			},
			{
				ID:          "2",
				Kind:        KindGitHub,
				Position:    valueobjects.Position{X: 600, Y: 200},
				Title:       "determined-beauty",
				TechUsed:    []string{"React", "Vite"},
				Usecase:     "Frontend application",
				Description: "Main user interface built with React and Vite",
			},
		},
		Edges:     []Edge{},
		Sections:  []Section{},
		CreatedAt: time.Now(),
	}
}
