// Package jsonfile provides JSON file-based persistence for answers.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/answer/internal/core/answer"
)

// Backend implements answer.Backend using one JSON file per answer.
type Backend struct {
	mu sync.RWMutex
}

var _ answer.Backend = (*Backend)(nil)

// New creates a new JSON file backend.
func New() *Backend {
	return &Backend{}
}

// Load reads the answer document at path.
// Returns an empty document if the file doesn't exist or is empty.
func (b *Backend) Load(path string) (answer.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return answer.NewDocument(), nil
		}
		return answer.Document{}, fmt.Errorf("read answer file: %w", err)
	}

	if len(data) == 0 {
		return answer.NewDocument(), nil
	}

	var doc answer.Document
	if err := answer.Decode(data, &doc); err != nil {
		return answer.Document{}, fmt.Errorf("parse answer file: %w", err)
	}
	if doc.Entries == nil {
		doc.Entries = []any{}
	}
	if doc.Rollback == nil {
		doc.Rollback = []any{}
	}

	return doc, nil
}

// Save writes the answer document to disk atomically.
// Uses write-to-temp-then-rename so readers never see a partial file.
func (b *Backend) Save(path string, doc answer.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create answers directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Remove deletes the answer file and any leftover temp file.
// A missing file is not an error.
func (b *Backend) Remove(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = os.Remove(path + ".tmp")

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove answer file: %w", err)
	}
	return nil
}
