package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is the domain model for a todo entry.
// ID is assigned once by NewTodo and never changes afterwards.
type Todo struct {
	ID          string
	Title       string
	TextContent string
	Priority    Priority
	Category    Category
	CreatedAt   time.Time
}

// NewTodo builds a Todo with a fresh identifier.
// An invalid priority falls back to DefaultPriority, an invalid category to DefaultCategory.
func NewTodo(title, body string, p Priority, c Category) Todo {
	if !p.Valid() {
		p = DefaultPriority
	}
	if !c.Valid() {
		c = DefaultCategory
	}
	return Todo{
		ID:          uuid.NewString(),
		Title:       title,
		TextContent: body,
		Priority:    p,
		Category:    c,
		CreatedAt:   time.Now(),
	}
}

// Done reports whether the todo sits in the complete bucket.
func (t Todo) Done() bool { return t.Priority == PriorityComplete }

// Summary holds per-priority counts for a header line.
type Summary struct {
	High, Medium, Low, Complete int
	Total                       int
}

// Pending is everything not complete.
func (s Summary) Pending() int { return s.Total - s.Complete }

// Counts tallies todos by priority.
func Counts(todos []Todo) Summary {
	var s Summary
	for _, t := range todos {
		switch t.Priority {
		case PriorityHigh:
			s.High++
		case PriorityMedium:
			s.Medium++
		case PriorityLow:
			s.Low++
		case PriorityComplete:
			s.Complete++
		}
		s.Total++
	}
	return s
}
