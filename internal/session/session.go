// Package session holds the draft state of one create-or-edit interaction.
//
// A Session starts either New (no backing todo) or Editing (seeded from an
// existing todo). It never touches a store: Confirm hands a finished todo
// back to the caller together with an Outcome, and the caller decides
// whether to create or update. Invalid input never fails loudly; an empty
// title turns Confirm into a cancel with ReasonEmptyTitle.
package session

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultPlaceholder is shown in the body while it holds no content.
const DefaultPlaceholder = "Add a note..."

type State int

const (
	StateNew State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "new"
}

type Outcome int

const (
	Cancelled Outcome = iota
	Created
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "cancelled"
	}
}

// Reason explains a Cancelled outcome.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUserCancelled
	ReasonEmptyTitle
	ReasonClosed
)

// Result is what Confirm and Cancel hand back.
type Result struct {
	Outcome Outcome
	Todo    model.Todo // zero for Cancelled
	Reason  Reason
}

type Session struct {
	state    State
	original model.Todo

	title    string
	body     string
	priority model.Priority
	category model.Category

	placeholder     string
	showPlaceholder bool
	closed          bool
}

type Option func(*Session)

// WithPlaceholder overrides the body placeholder sentinel.
func WithPlaceholder(text string) Option {
	return func(s *Session) {
		if text != "" {
			s.placeholder = text
		}
	}
}

// WithCategory sets the category of a new todo. Ignored when editing.
func WithCategory(c model.Category) Option {
	return func(s *Session) {
		if s.state == StateNew && c.Valid() {
			s.category = c
		}
	}
}

// Begin opens a session. A nil existing todo starts a new one.
// The existing todo is copied; it is never modified by the session.
func Begin(existing *model.Todo, opts ...Option) *Session {
	s := &Session{
		state:       StateNew,
		priority:    model.DefaultPriority,
		category:    model.DefaultCategory,
		placeholder: DefaultPlaceholder,
	}
	if existing != nil {
		s.state = StateEditing
		s.original = *existing
		s.title = existing.Title
		s.body = existing.TextContent
		if existing.Priority.Valid() {
			s.priority = existing.Priority
		}
		if existing.Category.Valid() {
			s.category = existing.Category
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == StateNew {
		s.showPlaceholder = true
	}
	return s
}

func (s *Session) State() State             { return s.state }
func (s *Session) Closed() bool             { return s.closed }
func (s *Session) Title() string            { return s.title }
func (s *Session) Priority() model.Priority { return s.priority }
func (s *Session) Category() model.Category { return s.category }
func (s *Session) Placeholder() string      { return s.placeholder }
func (s *Session) ShowingPlaceholder() bool { return s.showPlaceholder }
func (s *Session) SetTitle(title string)    { s.title = title }

func (s *Session) SelectPriority(p model.Priority) {
	if p.Valid() {
		s.priority = p
	}
}

func (s *Session) SelectCategory(c model.Category) {
	if c.Valid() {
		s.category = c
	}
}

// PressPriorityControl mirrors the three priority buttons by tag:
// 0 high, 1 medium, 2 low. Any other tag lands on complete.
func (s *Session) PressPriorityControl(tag int) {
	switch tag {
	case 0:
		s.priority = model.PriorityHigh
	case 1:
		s.priority = model.PriorityMedium
	case 2:
		s.priority = model.PriorityLow
	default:
		s.priority = model.PriorityComplete
	}
}

// SetBody replaces the body draft. Typing always ends the placeholder.
func (s *Session) SetBody(body string) {
	s.body = body
	s.showPlaceholder = false
}

// FocusBody clears the placeholder when the body field gains focus.
func (s *Session) FocusBody() {
	if s.showPlaceholder {
		s.showPlaceholder = false
		s.body = ""
	}
}

// BlurBody restores the placeholder when the body is left blank.
func (s *Session) BlurBody() {
	if strings.TrimSpace(s.body) == "" {
		s.body = ""
		s.showPlaceholder = true
	}
}

// BodyText is what the body field displays, placeholder included.
func (s *Session) BodyText() string {
	if s.showPlaceholder {
		return s.placeholder
	}
	return s.body
}

// Body is the real body content; empty while the placeholder shows.
func (s *Session) Body() string {
	if s.showPlaceholder {
		return ""
	}
	return s.body
}

// Confirm finishes the session. The raw title must be non-empty,
// otherwise the session is cancelled with ReasonEmptyTitle.
func (s *Session) Confirm() Result {
	if s.closed {
		return Result{Outcome: Cancelled, Reason: ReasonClosed}
	}
	if s.title == "" {
		s.closed = true
		return Result{Outcome: Cancelled, Reason: ReasonEmptyTitle}
	}
	s.closed = true

	if s.state == StateEditing {
		td := s.original
		td.Title = s.title
		td.TextContent = s.Body()
		td.Priority = s.priority
		td.Category = s.category
		return Result{Outcome: Updated, Todo: td}
	}
	return Result{
		Outcome: Created,
		Todo:    model.NewTodo(s.title, s.Body(), s.priority, s.category),
	}
}

// Cancel discards every draft.
func (s *Session) Cancel() Result {
	if s.closed {
		return Result{Outcome: Cancelled, Reason: ReasonClosed}
	}
	s.closed = true
	return Result{Outcome: Cancelled, Reason: ReasonUserCancelled}
}
