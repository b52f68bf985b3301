package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
)

type field int

const (
	fieldTitle field = iota
	fieldBody
	fieldControls
	fieldCount
)

// draft is the slice of *session.Session the editor drives.
type draft interface {
	State() session.State
	Title() string
	SetTitle(string)
	BodyText() string
	ShowingPlaceholder() bool
	SetBody(string)
	FocusBody()
	BlurBody()
	Priority() model.Priority
	PressPriorityControl(tag int)
	Category() model.Category
	SelectCategory(model.Category)
	Confirm() session.Result
	Cancel() session.Result
}

// editor is the detail screen: title input, body area, priority/category row.
type editor struct {
	draft draft
	title textinput.Model
	body  textarea.Model
	focus field
	keys  editorKeyMap
	help  help.Model
	width int
}

func newEditor(d draft, width int) *editor {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Title"
	ti.CharLimit = 200
	ti.SetValue(d.Title())
	ti.CursorEnd()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "│ "
	ta.CharLimit = 2000
	ta.SetHeight(6)

	e := &editor{
		draft: d,
		title: ti,
		body:  ta,
		keys:  newEditorKeyMap(),
		help:  help.New(),
	}
	e.setWidth(width)
	return e
}

func (e *editor) setWidth(w int) {
	if w <= 0 {
		w = 80
	}
	e.width = w
	e.title.Width = w - 8
	e.body.SetWidth(w - 6)
	e.help.Width = w
}

func (e *editor) Init() tea.Cmd {
	return e.title.Focus()
}

func (e *editor) Update(msg tea.Msg) tea.Cmd {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return e.forward(msg)
	}

	switch {
	case key.Matches(km, e.keys.Save):
		e.leave(e.focus)
		return outcomeCmd(e.draft.Confirm())
	case key.Matches(km, e.keys.Cancel):
		return outcomeCmd(e.draft.Cancel())
	case key.Matches(km, e.keys.NextField):
		return e.moveFocus((e.focus + 1) % fieldCount)
	case key.Matches(km, e.keys.PrevField):
		return e.moveFocus((e.focus + fieldCount - 1) % fieldCount)
	}

	switch e.focus {
	case fieldTitle:
		if km.Type == tea.KeyEnter {
			return e.moveFocus(fieldBody)
		}
	case fieldControls:
		e.handleControls(km)
		return nil
	}
	return e.forward(msg)
}

func (e *editor) handleControls(km tea.KeyMsg) {
	switch {
	case key.Matches(km, e.keys.High):
		e.draft.PressPriorityControl(0)
	case key.Matches(km, e.keys.Medium):
		e.draft.PressPriorityControl(1)
	case key.Matches(km, e.keys.Low):
		e.draft.PressPriorityControl(2)
	case key.Matches(km, e.keys.Life):
		e.draft.SelectCategory(model.CategoryLife)
	case key.Matches(km, e.keys.Work):
		e.draft.SelectCategory(model.CategoryWork)
	case km.Type == tea.KeyLeft || km.Type == tea.KeyRight:
		e.cyclePriority(km.Type == tea.KeyRight)
	}
}

func (e *editor) cyclePriority(forward bool) {
	tag := int(e.draft.Priority()) - int(model.PriorityHigh)
	if tag < 0 || tag > 2 {
		tag = 1
	}
	if forward {
		tag = (tag + 1) % 3
	} else {
		tag = (tag + 2) % 3
	}
	e.draft.PressPriorityControl(tag)
}

// forward hands msg to the focused widget and mirrors its value into the draft.
func (e *editor) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
		e.draft.SetTitle(e.title.Value())
	case fieldBody:
		e.body, cmd = e.body.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			e.draft.SetBody(e.body.Value())
		}
	}
	return cmd
}

func (e *editor) moveFocus(to field) tea.Cmd {
	if to == e.focus {
		return nil
	}
	e.leave(e.focus)
	e.focus = to
	switch to {
	case fieldTitle:
		return e.title.Focus()
	case fieldBody:
		e.draft.FocusBody()
		e.body.SetValue(e.draft.BodyText())
		return e.body.Focus()
	}
	return nil
}

func (e *editor) leave(f field) {
	switch f {
	case fieldTitle:
		e.title.Blur()
	case fieldBody:
		e.body.Blur()
		e.draft.BlurBody()
	}
}

func (e *editor) View() string {
	t := ui.Current()
	var b strings.Builder

	heading := "New todo"
	if e.draft.State() == session.StateEditing {
		heading = "Edit todo"
	}
	b.WriteString(t.Title.Render(heading) + "\n\n")

	b.WriteString(e.label("Title", fieldTitle) + "\n")
	b.WriteString(e.title.View() + "\n\n")

	b.WriteString(e.label("Note", fieldBody) + "\n")
	if e.focus == fieldBody {
		b.WriteString(e.body.View())
	} else {
		text := e.draft.BodyText()
		if e.draft.ShowingPlaceholder() {
			text = t.Muted.Render(text)
		}
		b.WriteString(lipgloss.NewStyle().Width(e.width - 6).Render(text))
	}
	b.WriteString("\n\n")

	b.WriteString(e.label("Priority", fieldControls) + "  " + e.priorityRow() + "\n")
	b.WriteString(e.label("Section ", fieldControls) + "  " + e.categoryRow() + "\n\n")

	if e.focus == fieldControls {
		b.WriteString(e.help.ShortHelpView(e.keys.controlsHelp()))
	} else {
		b.WriteString(e.help.View(e.keys))
	}
	return b.String()
}

func (e *editor) label(s string, f field) string {
	t := ui.Current()
	if e.focus == f {
		return t.Accent.Render(s)
	}
	return t.Muted.Render(s)
}

func (e *editor) priorityRow() string {
	t := ui.Current()
	cells := make([]string, 0, 3)
	for _, p := range model.SelectablePriorities() {
		name := " " + p.String() + " "
		if e.draft.Priority() == p {
			cells = append(cells, t.PriorityStyle(p).Reverse(true).Bold(true).Render(name))
		} else {
			cells = append(cells, t.PriorityStyle(p).Render(name))
		}
	}
	return strings.Join(cells, " ")
}

func (e *editor) categoryRow() string {
	t := ui.Current()
	cells := make([]string, 0, 2)
	for _, c := range model.Categories() {
		name := " " + c.String() + " "
		if e.draft.Category() == c {
			cells = append(cells, t.Selected.Render(name))
		} else {
			cells = append(cells, t.Muted.Render(name))
		}
	}
	return strings.Join(cells, " ")
}
