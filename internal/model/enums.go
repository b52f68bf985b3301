package model

import (
	"fmt"
	"strings"
)

// Priority drives the visual emphasis of a todo.
type Priority int

const (
	PriorityHigh Priority = iota + 1
	PriorityMedium
	PriorityLow
	// PriorityComplete is a valid state but is never offered as a
	// selectable control; it is only reached through the fallback branch
	// of the priority controls.
	PriorityComplete
)

// DefaultPriority is what a new, untouched draft gets.
const DefaultPriority = PriorityMedium

var priorityNames = map[Priority]string{
	PriorityHigh:     "high",
	PriorityMedium:   "medium",
	PriorityLow:      "low",
	PriorityComplete: "complete",
}

func (p Priority) String() string {
	if n, ok := priorityNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Selectable reports whether p is one of the three user-facing controls.
func (p Priority) Selectable() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// SelectablePriorities lists the controls in display order.
func SelectablePriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority accepts the lower-case names, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for p, n := range priorityNames {
		if n == needle {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// Category is the listing bucket a todo belongs to.
type Category int

const (
	CategoryLife Category = iota + 1
	CategoryWork
)

const DefaultCategory = CategoryLife

var categoryNames = map[Category]string{
	CategoryLife: "life",
	CategoryWork: "work",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Title is the section header text.
func (c Category) Title() string {
	n := c.String()
	if !c.Valid() {
		return n
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

// Categories returns the sections in listing order.
func Categories() []Category {
	return []Category{CategoryLife, CategoryWork}
}

func ParseCategory(s string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == needle {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
