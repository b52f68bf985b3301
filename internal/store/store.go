package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
)

// In-memory todo collection. Insertion order is the canonical enumeration
// order; positions passed to DeleteAt refer to it.
// Nothing is written to disk; the collection lives as long as the process.

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotFound        = errors.New("todo not found")
	ErrDuplicateID     = errors.New("duplicate todo id")
	ErrMissingID       = errors.New("todo has no id")
)

// Store is the authoritative todo collection. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	todos []model.Todo
	log   *slog.Logger
}

// Option configures a Store at construction.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTodos seeds the store. Entries with an ID already present are skipped.
func WithTodos(todos ...model.Todo) Option {
	return func(s *Store) {
		for _, t := range todos {
			if s.indexOf(t.ID) >= 0 {
				continue
			}
			s.todos = append(s.todos, t)
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends t to the end of the collection.
func (s *Store) Create(t model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return fmt.Errorf("create %q: %w", t.Title, ErrMissingID)
	}
	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("create %s: %w", t.ID, ErrDuplicateID)
	}
	s.todos = append(s.todos, t)
	s.log.Debug("todo created", "id", t.ID, "category", t.Category, "priority", t.Priority, "len", len(s.todos))
	return nil
}

// InsertAt puts t back at position, clamped to [0, Len()]. Used to undo a
// delete.
func (s *Store) InsertAt(position int, t model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return fmt.Errorf("insert %q: %w", t.Title, ErrMissingID)
	}
	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("insert %s: %w", t.ID, ErrDuplicateID)
	}
	position = max(0, min(position, len(s.todos)))
	s.todos = append(s.todos, model.Todo{})
	copy(s.todos[position+1:], s.todos[position:])
	s.todos[position] = t
	s.log.Debug("todo restored", "id", t.ID, "position", position, "len", len(s.todos))
	return nil
}

// DeleteAt removes the todo at position in the full enumeration.
func (s *Store) DeleteAt(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if position < 0 || position >= len(s.todos) {
		return fmt.Errorf("delete at %d (have %d): %w", position, len(s.todos), ErrIndexOutOfRange)
	}
	removed := s.todos[position]
	s.todos = append(s.todos[:position:position], s.todos[position+1:]...)
	s.log.Debug("todo deleted", "id", removed.ID, "position", position, "len", len(s.todos))
	return nil
}

// Update replaces the mutable fields of the todo with t.ID.
// Identity and position never change.
func (s *Store) Update(t model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(t.ID)
	if i < 0 {
		return fmt.Errorf("update %s: %w", t.ID, ErrNotFound)
	}
	cur := &s.todos[i]
	cur.Title = t.Title
	cur.TextContent = t.TextContent
	cur.Priority = t.Priority
	cur.Category = t.Category
	s.log.Debug("todo updated", "id", t.ID, "priority", t.Priority)
	return nil
}

// All returns a snapshot of every todo in insertion order.
func (s *Store) All() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// FilterByCategory returns the todos in c, preserving order.
func (s *Store) FilterByCategory(c model.Category) []model.Todo {
	return s.filter(func(t model.Todo) bool { return t.Category == c })
}

// FilterByPriority returns the todos with priority p, preserving order.
func (s *Store) FilterByPriority(p model.Priority) []model.Todo {
	return s.filter(func(t model.Todo) bool { return t.Priority == p })
}

func (s *Store) Get(id string) (model.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

// IndexOf returns the position of id in the full enumeration, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

func (s *Store) filter(keep func(model.Todo) bool) []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Todo{}
	for _, t := range s.todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// caller holds mu
func (s *Store) indexOf(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
