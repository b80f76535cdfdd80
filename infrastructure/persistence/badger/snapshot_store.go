// Package badger persists the project registry in an embedded BadgerDB.
// The whole registry lives under one fixed key as a single JSON
// document, matching the editor's one-slot storage contract.
package badger

import (
	"context"
	"encoding/json"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"railcanvas/application/ports"
)

// storageKey is the single slot holding the serialized registry
const storageKey = "railway-canvas-data"

// SnapshotStore implements ports.SnapshotStore on BadgerDB
type SnapshotStore struct {
	db     *badgerdb.DB
	logger *zap.Logger
}

// Open creates or opens the snapshot database under dataDir
func Open(dataDir string, logger *zap.Logger) (*SnapshotStore, error) {
	opts := badgerdb.DefaultOptions(dataDir).
		WithLogger(nil).
		WithSyncWrites(true)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	return &SnapshotStore{db: db, logger: logger}, nil
}

// Save writes the registry document into the storage slot
func (s *SnapshotStore) Save(ctx context.Context, doc ports.RegistryDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(storageKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot slot: %w", err)
	}
	return nil
}

// Load reads the storage slot. A missing or undecodable slot yields
// "no data" rather than an error; the caller falls back to defaults.
func (s *SnapshotStore) Load(ctx context.Context) (ports.RegistryDocument, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return ports.RegistryDocument{}, false, fmt.Errorf("failed to read snapshot slot: %w", err)
	}
	if raw == nil {
		return ports.RegistryDocument{}, false, nil
	}

	var doc ports.RegistryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("Discarding corrupt snapshot slot", zap.Error(err))
		return ports.RegistryDocument{}, false, nil
	}
	return doc, true, nil
}

// Close shuts down the database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
