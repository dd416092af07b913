// Package store owns the ordered task list and mirrors it to storage on
// every change.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/simpletodo/internal/idgen"
	"github.com/Makepad-fr/simpletodo/internal/logging"
	"github.com/Makepad-fr/simpletodo/internal/model"
	"github.com/Makepad-fr/simpletodo/internal/storage"
)

// DefaultKey is the storage key holding the list.
const DefaultKey = "simpletodo.todos"

// maxIDAttempts bounds how often a colliding id is regenerated.
const maxIDAttempts = 8

// ErrIDCollision means the generator kept returning ids already in use.
var ErrIDCollision = errors.New("store: could not generate a unique id")

// Store holds the task list in memory. Every mutation writes the full list
// back before returning; if the write fails the list is left untouched.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	ids     idgen.Generator
	logger  *log.Logger
	key     string
	tasks   []model.Task
}

type Option func(*Store)

func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Store) { s.ids = g }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKey overrides DefaultKey. Blank keys are ignored.
func WithKey(key string) Option {
	return func(s *Store) {
		if k := strings.TrimSpace(key); k != "" {
			s.key = k
		}
	}
}

// New builds a store over st and loads whatever st already holds.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: st,
		ids:     idgen.UUID{},
		logger:  logging.Discard(),
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Key is the storage key the list lives under.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. A missing or
// malformed blob yields an empty list.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []model.Task{}
	blob, err := s.storage.GetItem(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read failed, starting empty", "key", s.key, "err", err)
		}
		return
	}
	tasks, err := Decode(blob)
	if err != nil {
		s.logger.Warn("discarding malformed todos", "key", s.key, "err", err)
		return
	}
	s.tasks = tasks
	s.logger.Debug("loaded", "key", s.key, "count", len(tasks))
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Stats counts done and pending tasks.
func (s *Store) Stats() (done, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends a new pending task. Blank text is ignored: ok is false and
// nothing is written.
func (s *Store) Add(text string) (task model.Task, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.freshID()
	if err != nil {
		return model.Task{}, false, err
	}
	task = model.Task{ID: id, Text: text}
	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)
	if err := s.commit(next); err != nil {
		return model.Task{}, false, err
	}
	s.logger.Debug("added", "id", id)
	return task, true, nil
}

// Toggle flips Done on the task with id. found is false when no task
// matches, in which case nothing is written.
func (s *Store) Toggle(id string) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]model.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i].Done = !next[i].Done
	if err := s.commit(next); err != nil {
		return true, err
	}
	s.logger.Debug("toggled", "id", id, "done", next[i].Done)
	return true, nil
}

// Delete removes the task with id. found is false when no task matches,
// in which case nothing is written.
func (s *Store) Delete(id string) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	if err := s.commit(next); err != nil {
		return true, err
	}
	s.logger.Debug("deleted", "id", id)
	return true, nil
}

// commit persists next and only then makes it the current list.
func (s *Store) commit(next []model.Task) error {
	blob, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(s.key, blob); err != nil {
		s.logger.Error("persist failed", "key", s.key, "err", err)
		return fmt.Errorf("save: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *Store) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
