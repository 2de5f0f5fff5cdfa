package buddy

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nicolagi/buddy/kv"
	log "github.com/sirupsen/logrus"
)

// DefaultKey is the storage key the task list lives under, shared by the store and the widget.
const DefaultKey = "todos"

type storeOption func(*Store) error

// WithKey makes the store use a storage key other than DefaultKey.
func WithKey(key string) storeOption {
	return func(s *Store) error {
		if key == "" {
			return errors.New("empty storage key")
		}
		s.key = key
		return nil
	}
}

// WithClock replaces time.Now as the source of creation times. Meant for tests.
func WithClock(now func() time.Time) storeOption {
	return func(s *Store) error {
		s.now = now
		return nil
	}
}

// WithSyncWrites makes every mutation persist before returning, instead of in the background.
// Tests use it for determinism.
func WithSyncWrites() storeOption {
	return func(s *Store) error {
		s.syncWrites = true
		return nil
	}
}

// Store owns the task list. It holds the authoritative in-memory copy and is the only writer of the
// persisted copy. Mutations update the in-memory list and return; the whole list is then written to
// storage in the background. A failed write is logged and the in-memory list stays authoritative for
// the rest of the process lifetime.
type Store struct {
	storage    kv.Storage
	key        string
	now        func() time.Time
	syncWrites bool

	mu     sync.Mutex
	tasks  []Task
	writer *writer
}

// NewStore creates a store persisting to the given storage. The store starts empty; call Load to read
// the persisted list, and Close when done to let pending writes land.
func NewStore(storage kv.Storage, opts ...storeOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("nil storage")
	}
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		now:     time.Now,
		tasks:   []Task{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.writer = newWriter(storage, s.key, s.syncWrites)
	return s, nil
}

// Load replaces the in-memory list with the persisted one. Missing, unreadable or malformed data all
// result in an empty list; the cause is logged but not returned.
func (s *Store) Load() {
	tasks := readTasks(s.storage, s.key, log.WarnLevel)
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

// readTasks reads and decodes the list under key, degrading to an empty list on any error. The store and
// the widget differ only in how loudly they report failures.
func readTasks(storage kv.Storage, key string, level log.Level) []Task {
	b, err := storage.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return []Task{}
	}
	logEntry := log.WithField("key", key)
	if err != nil {
		logEntry.WithField("cause", err).Log(level, "Could not read tasks, starting from an empty list")
		return []Task{}
	}
	tasks, err := decodeTasks(b)
	if err != nil {
		logEntry.WithField("cause", err).Log(level, "Could not decode tasks, starting from an empty list")
		return []Task{}
	}
	return tasks
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Get looks up a task by exact id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].clone(), true
	}
	return Task{}, false
}

// Resolve maps an exact id or an unambiguous id prefix to the full id.
func (s *Store) Resolve(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolveID(s.tasks, id)
}

// Add appends a new task. It does nothing and reports false if the title is blank.
func (s *Store) Add(title string, deadline *time.Time) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}
	id, err := newID()
	if err != nil {
		log.WithField("cause", err).Error("Could not generate task id")
		return Task{}, false
	}
	task := Task{
		ID:        id,
		Title:     title,
		Deadline:  normalizeDeadline(deadline),
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.persist()
	return task.clone(), true
}

// Toggle flips the completion state of a task. It reports false, and does nothing, if no task has the
// given id.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist()
	return true
}

// Edit replaces title and deadline of a task, keeping its id, completion state and creation time. It
// does nothing and reports false if the task doesn't exist or the new title is blank.
func (s *Store) Edit(id string, title string, deadline *time.Time) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Title = title
	s.tasks[i].Deadline = normalizeDeadline(deadline)
	s.persist()
	return true
}

// Delete removes a task. It reports false, and does nothing, if no task has the given id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	tasks := make([]Task, 0, len(s.tasks)-1)
	tasks = append(tasks, s.tasks[:i]...)
	s.tasks = append(tasks, s.tasks[i+1:]...)
	s.persist()
	return true
}

// Export returns the list as an indented JSON array. It has no side effects.
func (s *Store) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := encodeTasks(s.tasks, true)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Import replaces the whole list with the tasks found in text, a JSON array as produced by Export.
// Elements lacking a non-empty id, a non-empty title or a boolean completed property are dropped.
// If text isn't JSON, or isn't an array, the list is left untouched and the result carries an
// *ImportError.
func (s *Store) Import(text string) ImportResult {
	tasks, err := parseImport(text)
	if err != nil {
		return ImportResult{Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.persist()
	return ImportResult{Success: true, Count: len(tasks)}
}

// Flush blocks until every write scheduled so far has been attempted.
func (s *Store) Flush() {
	s.writer.flush()
}

// Close waits for pending writes and stops the background writer. It does not close the storage,
// which belongs to the caller.
func (s *Store) Close() error {
	s.writer.close()
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist snapshots the list and hands it to the writer. Must be called with s.mu held, right after
// the mutation, so that writes are always derived from the latest in-memory state and are enqueued in
// mutation order.
func (s *Store) persist() {
	b, err := encodeTasks(s.tasks, false)
	if err != nil {
		log.WithField("cause", err).Error("Could not encode tasks")
		return
	}
	if !s.writer.enqueue(b) {
		log.WithField("key", s.key).Warning("Store is closed, change kept in memory only")
	}
}

func normalizeDeadline(deadline *time.Time) *time.Time {
	if deadline == nil {
		return nil
	}
	d := deadline.UTC()
	return &d
}
