package ports

import (
	"context"

	"railcanvas/application/store"
	"railcanvas/domain/core/entities"
)

// RegistryDocument is the durable shape of the whole project registry,
// persisted as one JSON document under a single storage slot.
type RegistryDocument struct {
	Projects []entities.Project `json:"projects"`
}

// SnapshotStore persists the registry document. Implementations must
// treat a missing or unreadable slot as "no data", not an error.
type SnapshotStore interface {
	Save(ctx context.Context, doc RegistryDocument) error
	// Load returns the stored document and whether one was found.
	Load(ctx context.Context) (RegistryDocument, bool, error)
	Close() error
}

// Reply is a normalized advisory-source response: free text, optionally
// carrying a proposed change-set.
type Reply struct {
	Text    string              `json:"text"`
	Changes *entities.ChangeSet `json:"changes,omitempty"`
}

// AdvisorySource generates change-set proposals from natural-language
// prompts. The gateway behaves identically regardless of which transport
// produced the reply.
type AdvisorySource interface {
	Send(ctx context.Context, prompt string, snapshot store.Snapshot) (Reply, error)
	// Mode names the transport currently answering ("live" or "rules").
	Mode() string
}
