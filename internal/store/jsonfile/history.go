package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/hay-kot/answer/internal/core/answer"
	"github.com/hay-kot/answer/pkg/randid"
)

// snapshotLayout nests snapshots as YYYY/MM/DD/HH/mm/ss/<nanos>-<rand>.json.
// Every component is fixed width so lexical order is chronological.
const snapshotLayout = "2006/01/02/15/04/05"

const suffixLen = 6

// HistoryStore implements answer.SnapshotStore with one JSON file per
// snapshot under a directory tree keyed by timestamp.
type HistoryStore struct {
	dir  string
	keep int
	log  zerolog.Logger
	now  func() time.Time
	last time.Time
	mu   sync.Mutex
}

var _ answer.SnapshotStore = (*HistoryStore)(nil)

// NewHistoryStore creates a snapshot history rooted at dir.
// keep limits retained snapshots; keep <= 0 uses answer.DefaultKeep.
func NewHistoryStore(dir string, keep int) *HistoryStore {
	if keep <= 0 {
		keep = answer.DefaultKeep
	}
	return &HistoryStore{
		dir:  dir,
		keep: keep,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
}

// WithLogger sets the logger used for eviction and recorder errors.
func (s *HistoryStore) WithLogger(l zerolog.Logger) *HistoryStore {
	s.log = l
	return s
}

// Keep returns the retention limit.
func (s *HistoryStore) Keep() int {
	return s.keep
}

// Record writes value as a new snapshot and evicts the oldest beyond keep.
func (s *HistoryStore) Record(ctx context.Context, value any) (answer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now().UTC()
	// Keep IDs strictly increasing within this process.
	if !created.After(s.last) {
		created = s.last.Add(time.Nanosecond)
	}
	s.last = created

	snap := answer.Snapshot{
		ID:      fmt.Sprintf("%s/%09d-%s", created.Format(snapshotLayout), created.Nanosecond(), randid.Generate(suffixLen)),
		Created: created,
		Value:   value,
	}

	if err := s.write(snap); err != nil {
		return answer.Snapshot{}, err
	}

	if err := s.evict(ctx); err != nil {
		return snap, err
	}

	return snap, nil
}

// List returns all snapshots, oldest first.
func (s *HistoryStore) List(ctx context.Context) ([]answer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	return s.readAll(ctx, ids)
}

// First returns the oldest snapshot. Returns ErrNoSnapshots if empty.
func (s *HistoryStore) First(ctx context.Context) (answer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids()
	if err != nil {
		return answer.Snapshot{}, err
	}
	if len(ids) == 0 {
		return answer.Snapshot{}, answer.ErrNoSnapshots
	}
	return s.read(ids[0])
}

// Last returns the newest snapshot. Returns ErrNoSnapshots if empty.
func (s *HistoryStore) Last(ctx context.Context) (answer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids()
	if err != nil {
		return answer.Snapshot{}, err
	}
	if len(ids) == 0 {
		return answer.Snapshot{}, answer.ErrNoSnapshots
	}
	return s.read(ids[len(ids)-1])
}

// Prev returns the newest n snapshots, oldest first. n <= 0 returns all.
func (s *HistoryStore) Prev(ctx context.Context, n int) ([]answer.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(ids) {
		ids = ids[len(ids)-n:]
	}
	return s.readAll(ctx, ids)
}

// Discard removes a snapshot by ID. Returns ErrSnapshotNotFound if missing.
func (s *HistoryStore) Discard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !filepath.IsLocal(filepath.FromSlash(id)) || !validSuffix(id) {
		return answer.ErrSnapshotNotFound
	}

	if err := os.Remove(s.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return answer.ErrSnapshotNotFound
		}
		return fmt.Errorf("remove snapshot: %w", err)
	}

	s.pruneDirs(id)
	return nil
}

func validSuffix(id string) bool {
	base := path.Base(id)
	i := strings.LastIndexByte(base, '-')
	return i >= 0 && randid.Valid(base[i+1:], suffixLen)
}

// Recorder returns an answer.Observer that records a snapshot for every set.
// Record failures are logged, never returned to the store.
func (s *HistoryStore) Recorder(ctx context.Context) answer.Observer {
	return func(ev answer.Event) {
		if ev.Op != answer.OpSet {
			return
		}
		if _, err := s.Record(ctx, ev.Value); err != nil {
			s.log.Error().Err(err).Str("answer", ev.Name).Msg("record snapshot")
		}
	}
}

func (s *HistoryStore) filePath(id string) string {
	return filepath.Join(s.dir, filepath.FromSlash(id)+".json")
}

// ids returns all snapshot IDs, oldest first. Caller must hold lock.
func (s *HistoryStore) ids() ([]string, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat history directory: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(s.dir), "**/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob snapshots: %w", err)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(m, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// readAll reads the given snapshots, skipping files that vanished or are
// malformed. Caller must hold lock.
func (s *HistoryStore) readAll(ctx context.Context, ids []string) ([]answer.Snapshot, error) {
	snaps := make([]answer.Snapshot, 0, len(ids))
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snap, err := s.read(id)
		if err != nil {
			s.log.Debug().Err(err).Str("id", id).Msg("skip unreadable snapshot")
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (s *HistoryStore) read(id string) (answer.Snapshot, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		return answer.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap answer.Snapshot
	if err := answer.Decode(data, &snap); err != nil {
		return answer.Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	snap.ID = id
	return snap, nil
}

// write stores a snapshot atomically. Caller must hold lock.
func (s *HistoryStore) write(snap answer.Snapshot) error {
	p := s.filePath(snap.ID)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename snapshot file: %w", err)
	}
	return nil
}

// evict removes the oldest snapshots beyond keep. Caller must hold lock.
func (s *HistoryStore) evict(ctx context.Context) error {
	ids, err := s.ids()
	if err != nil {
		return err
	}
	if len(ids) <= s.keep {
		return nil
	}

	var errs []error
	for _, id := range ids[:len(ids)-s.keep] {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.Remove(s.filePath(id)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("evict snapshot %s: %w", id, err))
			continue
		}
		s.log.Debug().Str("id", id).Msg("evicted snapshot")
		s.pruneDirs(id)
	}
	return errors.Join(errs...)
}

// pruneDirs removes the now-empty timestamp directories above a snapshot,
// stopping at the first non-empty one or the history root.
func (s *HistoryStore) pruneDirs(id string) {
	for dir := path.Dir(id); dir != "." && dir != "/"; dir = path.Dir(dir) {
		full := filepath.Join(s.dir, filepath.FromSlash(dir))
		entries, err := os.ReadDir(full)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return
		}
	}
}
