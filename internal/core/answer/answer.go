// Package answer defines the versioned answer store: a single named value
// with an entries log, a rollback stack and undo/redo.
package answer

import "errors"

// Sentinel errors for answer operations.
var (
	ErrInvalidName = errors.New("invalid answer name")
	ErrSave        = errors.New("save answer")
	ErrDelete      = errors.New("delete answer")
)

// Document is the persisted state of one named answer.
type Document struct {
	Entries  []any `json:"entries"`
	Rollback []any `json:"rollback"`
}

// NewDocument returns an empty document with both sequences allocated.
func NewDocument() Document {
	return Document{Entries: []any{}, Rollback: []any{}}
}

// normalize replaces nil sequences with empty ones so the document always
// serializes as {"entries": [], "rollback": []}.
func (d *Document) normalize() {
	if d.Entries == nil {
		d.Entries = []any{}
	}
	if d.Rollback == nil {
		d.Rollback = []any{}
	}
}

// Backend loads, saves and removes documents at a path.
type Backend interface {
	// Load returns the document stored at path.
	Load(path string) (Document, error)
	// Save overwrites the document at path. Readers must never observe a
	// partially written document.
	Save(path string, doc Document) error
	// Remove deletes the document at path. A missing file is not an error.
	Remove(path string) error
}

// Op names a mutating store operation.
type Op string

const (
	OpSet     Op = "set"
	OpUndo    Op = "undo"
	OpRedo    Op = "redo"
	OpBackup  Op = "backup"
	OpErase   Op = "erase"
	OpSave    Op = "save"
	OpDel     Op = "del"
	OpDestroy Op = "destroy"
)

// Event describes a completed mutation.
type Event struct {
	Op   Op
	Name string
	// Value is the value that was appended, moved or removed. Nil for
	// operations that touch more than one value.
	Value any
}

// Observer is notified synchronously after each successful mutation.
type Observer func(Event)
