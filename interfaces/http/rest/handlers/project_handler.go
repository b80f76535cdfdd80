package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"railcanvas/application/export"
	"railcanvas/application/registry"
	"railcanvas/application/store"
	pkgerrors "railcanvas/pkg/errors"
)

// ProjectHandler exposes the project registry operations
type ProjectHandler struct {
	registry *registry.Registry
	store    *store.GraphStore
	logger   *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(reg *registry.Registry, graphStore *store.GraphStore, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{registry: reg, store: graphStore, logger: logger}
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"projects":  h.registry.Projects(),
		"currentID": h.registry.Current().ID,
	})
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	project := h.registry.CreateProject()
	respondJSON(w, http.StatusCreated, project)
}

// SelectProject handles POST /projects/{projectID}/select
func (h *ProjectHandler) SelectProject(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.SelectProject(chi.URLParam(r, "projectID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProject handles DELETE /projects/{projectID}. Deleting the last
// remaining project answers 409 and changes nothing.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteProject(chi.URLParam(r, "projectID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveProject handles POST /projects/{projectID}/save
func (h *ProjectHandler) SaveProject(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.SaveProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportProject handles GET /projects/{projectID}/export. The export
// captures the current working collections, so the id must name the
// current project.
func (h *ProjectHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	current := h.registry.Current()
	if current.ID != id {
		respondError(w, h.logger, pkgerrors.NewConflict("only the current project can be exported"))
		return
	}

	doc := export.BuildDocument(current, h.store.Snapshot())
	respondJSON(w, http.StatusOK, doc)
}

// ImportProject handles POST /import: reconstructs a fresh project from
// an export document and makes it current.
func (h *ProjectHandler) ImportProject(w http.ResponseWriter, r *http.Request) {
	var doc export.Document
	if err := decodeAndValidate(r, &doc); err != nil {
		respondError(w, h.logger, err)
		return
	}

	project := h.registry.ImportProject(export.Import(doc))
	respondJSON(w, http.StatusCreated, project)
}
