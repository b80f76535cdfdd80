package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"railcanvas/application/ports"
	"railcanvas/application/proposals"
	"railcanvas/application/store"
)

// AssistantHandler exposes the conversational assistant: prompts go to
// the advisory source, replies carrying a change-set become the pending
// proposal, and an explicit apply merges it into the canvas.
type AssistantHandler struct {
	source  ports.AdvisorySource
	gateway *proposals.Gateway
	store   *store.GraphStore
	logger  *zap.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(source ports.AdvisorySource, gateway *proposals.Gateway, graphStore *store.GraphStore, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		source:  source,
		gateway: gateway,
		store:   graphStore,
		logger:  logger,
	}
}

// MessageRequest represents the request body for a prompt
type MessageRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=4000"`
}

// MessageResponse represents the assistant's answer
type MessageResponse struct {
	Text       string `json:"text"`
	HasChanges bool   `json:"hasChanges"`
	Mode       string `json:"mode"`
}

// SendMessage handles POST /assistant/messages
func (h *AssistantHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	reply, err := h.source.Send(r.Context(), req.Prompt, h.store.Snapshot())
	if err != nil {
		// The fallback source degrades internally; an error here means
		// even the rule table failed, which it never does by contract.
		respondError(w, h.logger, err)
		return
	}

	if reply.Changes != nil {
		h.gateway.Propose(*reply.Changes)
	}

	respondJSON(w, http.StatusOK, MessageResponse{
		Text:       reply.Text,
		HasChanges: reply.Changes != nil,
		Mode:       h.source.Mode(),
	})
}

// ApplyChanges handles POST /assistant/apply. Confirming with no
// pending proposal is a no-op.
func (h *AssistantHandler) ApplyChanges(w http.ResponseWriter, r *http.Request) {
	h.gateway.Apply()
	w.WriteHeader(http.StatusNoContent)
}

// DiscardChanges handles POST /assistant/discard
func (h *AssistantHandler) DiscardChanges(w http.ResponseWriter, r *http.Request) {
	h.gateway.Discard()
	w.WriteHeader(http.StatusNoContent)
}

// GetPending handles GET /assistant/pending
func (h *AssistantHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	pending, ok := h.gateway.Pending()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}
