package answer

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/answer/internal/core/validate"
)

// Store is a single named answer with its history. It keeps the entries log
// and the rollback stack in memory and persists them through a Backend after
// every mutating call.
//
// A Store is not safe for concurrent use. Two stores pointed at the same name
// race with last-write-wins semantics on the backing file; callers must keep
// one writer per name.
type Store struct {
	name     string
	opts     Options
	cwd      string
	path     string
	doc      Document
	backend  Backend
	resolver PathResolver
	custom   bool
	observer Observer
	log      zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCwd overrides the base directory the store file is resolved against.
func WithCwd(cwd string) Option {
	return func(s *Store) { s.opts.Cwd = cwd }
}

// WithOptions replaces all path options at once.
func WithOptions(o Options) Option {
	return func(s *Store) { s.opts = o }
}

// WithResolver replaces the default path resolution. Cwd then reports the
// directory of the resolved path.
func WithResolver(r PathResolver) Option {
	return func(s *Store) {
		s.resolver = r
		s.custom = true
	}
}

// WithObserver registers a callback invoked after each successful mutation.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates the store for name and loads its document through backend.
// A missing or unreadable document is not an error: the store starts empty.
func New(name string, backend Backend, opts ...Option) (*Store, error) {
	if err := validate.StoreName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}

	s := &Store{
		name:     name,
		backend:  backend,
		resolver: ResolvePath,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Path and cwd are resolved once; later option changes have no effect.
	path, err := s.resolver(name, s.opts)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %q: %w", name, err)
	}
	s.path = path
	if s.custom {
		s.cwd = filepath.Dir(path)
	} else if s.cwd, err = ResolveDir(s.opts); err != nil {
		return nil, fmt.Errorf("resolve cwd for %q: %w", name, err)
	}
	s.log = s.log.With().Str("answer", name).Logger()

	s.doc = s.load()
	return s, nil
}

// load reads the document, treating every failure as an empty store.
func (s *Store) load() Document {
	doc, err := s.backend.Load(s.path)
	if err != nil {
		s.log.Debug().Err(err).Str("path", s.path).Msg("load failed, starting empty")
		return NewDocument()
	}
	doc.normalize()
	return doc
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// Path returns the absolute path of the backing file.
func (s *Store) Path() string { return s.path }

// Cwd returns the resolved base directory.
func (s *Store) Cwd() string { return s.cwd }

// Options returns the options the store was created with.
func (s *Store) Options() Options { return s.opts }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.doc.Entries) }

// Current returns the most recent entry.
func (s *Store) Current() (any, bool) {
	if len(s.doc.Entries) == 0 {
		return nil, false
	}
	return s.doc.Entries[len(s.doc.Entries)-1], true
}

// Get returns the current value, same as Current.
func (s *Store) Get() (any, bool) {
	return s.Current()
}

// Prev returns the entry n steps before the current one. Prev(0) is the
// current value. Out of range returns false.
func (s *Store) Prev(n int) (any, bool) {
	offset := 1
	if n > 0 {
		offset = n + 1
	}
	i := len(s.doc.Entries) - offset
	if i < 0 || i >= len(s.doc.Entries) {
		return nil, false
	}
	return s.doc.Entries[i], true
}

// List returns the entries log, oldest first. The slice is the store's
// internal state and changes with later calls.
func (s *Store) List() []any {
	return s.doc.Entries
}

// Rollback returns the rollback stack, most recently undone last. The slice
// is the store's internal state.
func (s *Store) Rollback() []any {
	return s.doc.Rollback
}

// Set appends value to the entries log and persists. A value that cannot be
// encoded as JSON is rejected with ErrSave and the log is left unchanged.
//
// Set does not clear the rollback stack, so a redo after a new Set can bring
// back a value that was undone before it.
func (s *Store) Set(value any) error {
	if err := checkEncodable(value); err != nil {
		return fmt.Errorf("%w %q: %w", ErrSave, s.name, err)
	}
	s.doc.Entries = append(s.doc.Entries, value)
	return s.commit(Event{Op: OpSet, Value: value})
}

// Undo moves the current entry onto the rollback stack. It is a no-op and
// does not persist when there are no entries.
func (s *Store) Undo() error {
	n := len(s.doc.Entries)
	if n == 0 {
		return nil
	}

	v := s.doc.Entries[n-1]
	s.doc.Entries = s.doc.Entries[:n-1]
	s.doc.Rollback = append(s.doc.Rollback, v)
	return s.commit(Event{Op: OpUndo, Value: v})
}

// Redo moves the last undone value back onto the entries log. It is a no-op
// and does not persist when the rollback stack is empty.
func (s *Store) Redo() error {
	n := len(s.doc.Rollback)
	if n == 0 {
		return nil
	}

	v := s.doc.Rollback[n-1]
	s.doc.Rollback = s.doc.Rollback[:n-1]
	s.doc.Entries = append(s.doc.Entries, v)
	return s.commit(Event{Op: OpRedo, Value: v})
}

// Backup appends all entries to the rollback stack without clearing them.
// Nothing is persisted until the next Save or mutating call.
func (s *Store) Backup() {
	s.backup()
	s.notify(Event{Op: OpBackup})
}

func (s *Store) backup() {
	s.doc.Rollback = append(s.doc.Rollback, s.doc.Entries...)
}

// Erase removes the current entry permanently; it is not moved to the
// rollback stack.
func (s *Store) Erase() error {
	var removed any
	if n := len(s.doc.Entries); n > 0 {
		removed = s.doc.Entries[n-1]
		s.doc.Entries = s.doc.Entries[:n-1]
	}
	return s.commit(Event{Op: OpErase, Value: removed})
}

// Save persists the in-memory document.
func (s *Store) Save() error {
	return s.commit(Event{Op: OpSave})
}

// Del backs up the entries onto the rollback stack, clears the entries and
// removes the backing file. The in-memory rollback stack survives; a later
// mutating call writes the file again.
func (s *Store) Del() error {
	s.backup()
	s.doc.Entries = []any{}
	return s.remove(Event{Op: OpDel})
}

// Destroy clears entries and rollback and removes the backing file.
func (s *Store) Destroy() error {
	s.doc.Entries = []any{}
	s.doc.Rollback = []any{}
	return s.remove(Event{Op: OpDestroy})
}

// commit persists the document and notifies the observer. On failure the
// in-memory mutation is kept.
func (s *Store) commit(ev Event) error {
	if err := s.backend.Save(s.path, s.doc); err != nil {
		return fmt.Errorf("%w %q: %w", ErrSave, s.name, err)
	}
	s.notify(ev)
	return nil
}

// remove deletes the backing file. In-memory state is already cleared by the
// caller regardless of the outcome.
func (s *Store) remove(ev Event) error {
	if err := s.backend.Remove(s.path); err != nil {
		return fmt.Errorf("%w %q: %w", ErrDelete, s.name, err)
	}
	s.notify(ev)
	return nil
}

func (s *Store) notify(ev Event) {
	s.log.Debug().Str("op", string(ev.Op)).Int("entries", len(s.doc.Entries)).Int("rollback", len(s.doc.Rollback)).Msg("answer updated")
	if s.observer == nil {
		return
	}
	ev.Name = s.name
	s.observer(ev)
}
