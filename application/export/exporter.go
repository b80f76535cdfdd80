package export

import (
	"time"

	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
)

// ProjectMeta is the identifying slice of a project carried in exports
type ProjectMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the display-agnostic projection of a project: the
// canonical node/edge/section records plus export provenance. Transient
// visual state (hover highlighting) never reaches the store, so the
// snapshot is already clean.
type Document struct {
	Project    ProjectMeta        `json:"project"`
	Nodes      []entities.Node    `json:"nodes"`
	Edges      []entities.Edge    `json:"edges"`
	Sections   []entities.Section `json:"sections"`
	ExportedAt time.Time          `json:"exportedAt"`
}

// BuildDocument projects a working snapshot into the export format
func BuildDocument(project entities.Project, snapshot store.Snapshot) Document {
	return Document{
		Project: ProjectMeta{
			ID:        project.ID,
			Name:      project.Name,
			CreatedAt: project.CreatedAt,
		},
		Nodes:      snapshot.Nodes,
		Edges:      snapshot.Edges,
		Sections:   snapshot.Sections,
		ExportedAt: time.Now(),
	}
}

// Import reconstructs a fresh project from an export document. Ids of
// nodes, edges and sections are preserved so re-importing an export
// reproduces the same graph; the project itself gets a new identity.
func Import(doc Document) entities.Project {
	project := entities.NewProject(doc.Project.Name)
	if doc.Nodes != nil {
		project.Nodes = append([]entities.Node{}, doc.Nodes...)
	}
	if doc.Edges != nil {
		project.Edges = append([]entities.Edge{}, doc.Edges...)
	}
	if doc.Sections != nil {
		project.Sections = append([]entities.Section{}, doc.Sections...)
	}
	return project
}
