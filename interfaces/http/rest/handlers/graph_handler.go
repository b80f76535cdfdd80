package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
	"railcanvas/domain/core/valueobjects"
	"railcanvas/domain/services"
)

// GraphHandler exposes the graph store's mutation operations to the
// canvas UI. Not-found targets are silent no-ops per the store
// contract, so most mutations answer 204 unconditionally.
type GraphHandler struct {
	store  *store.GraphStore
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(graphStore *store.GraphStore, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{store: graphStore, logger: logger}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Kind     string                 `json:"type" validate:"required,min=1,max=50"`
	Position *valueobjects.Position `json:"position,omitempty"`
}

// CreateNode handles POST /nodes
func (h *GraphHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	node := h.store.AddNode(entities.NodeKind(req.Kind), req.Position)
	respondJSON(w, http.StatusCreated, node)
}

// UpdateNode handles PATCH /nodes/{nodeID}
func (h *GraphHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var patch entities.NodePatch
	if err := decodeAndValidate(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.store.UpdateNodeFields(chi.URLParam(r, "nodeID"), patch)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *GraphHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteNode(chi.URLParam(r, "nodeID"))
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateNode handles POST /nodes/{nodeID}/duplicate
func (h *GraphHandler) DuplicateNode(w http.ResponseWriter, r *http.Request) {
	node, ok := h.store.DuplicateNode(chi.URLParam(r, "nodeID"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusCreated, node)
}

// ToggleNodeDisabled handles POST /nodes/{nodeID}/toggle-disabled
func (h *GraphHandler) ToggleNodeDisabled(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleNodeDisabled(chi.URLParam(r, "nodeID"))
	w.WriteHeader(http.StatusNoContent)
}

// MoveNodeRequest represents the request body for moving a node
type MoveNodeRequest struct {
	Position valueobjects.Position `json:"position"`
}

// MoveNode handles POST /nodes/{nodeID}/position
func (h *GraphHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var req MoveNodeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.store.MoveNode(chi.URLParam(r, "nodeID"), req.Position)
	w.WriteHeader(http.StatusNoContent)
}

// Connect handles POST /edges. A gesture naming unknown endpoints is
// silently ignored and answers 204 with no edge.
func (h *GraphHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var gesture services.ConnectionGesture
	if err := decodeAndValidate(r, &gesture); err != nil {
		respondError(w, h.logger, err)
		return
	}

	edge, ok := h.store.Connect(gesture)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusCreated, edge)
}

// UpdateEdgeLabelRequest represents the request body for label edits
type UpdateEdgeLabelRequest struct {
	Label string `json:"label"`
}

// UpdateEdgeLabel handles PATCH /edges/{edgeID}/label. Editing and
// deleting are separate endpoints so one invocation can never do both.
func (h *GraphHandler) UpdateEdgeLabel(w http.ResponseWriter, r *http.Request) {
	var req UpdateEdgeLabelRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.store.UpdateEdgeLabel(chi.URLParam(r, "edgeID"), req.Label)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *GraphHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteEdge(chi.URLParam(r, "edgeID"))
	w.WriteHeader(http.StatusNoContent)
}

// CreateSection handles POST /sections
func (h *GraphHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	section := h.store.AddSection()
	respondJSON(w, http.StatusCreated, section)
}

// UpdateSection handles PATCH /sections/{sectionID}
func (h *GraphHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var patch entities.SectionPatch
	if err := decodeAndValidate(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.store.UpdateSection(chi.URLParam(r, "sectionID"), patch)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSection handles DELETE /sections/{sectionID}
func (h *GraphHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteSection(chi.URLParam(r, "sectionID"))
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}
