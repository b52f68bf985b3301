package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Source is what the listing needs from the todo collection.
type Source interface {
	All() []model.Todo
	FilterByCategory(model.Category) []model.Todo
	Get(id string) (model.Todo, bool)
	IndexOf(id string) int
	DeleteAt(position int) error
	InsertAt(position int, t model.Todo) error
	Create(model.Todo) error
	Update(model.Todo) error
}

var _ Source = (*store.Store)(nil)

// Options tune the program.
type Options struct {
	DateFormat     string
	Placeholder    string
	Category       model.Category // initial section
	HeaderImageURL string
	Logger         *slog.Logger
	HTTPClient     *http.Client
	Now            func() time.Time
}

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return i.todo.TextContent }
func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line).
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	width := m.Width() - 12
	if width < 10 {
		width = 10
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.TodoLine(0, it.todo, width))
}

// removed remembers the last deleted todo for a single undo.
type removed struct {
	todo model.Todo
	pos  int
}

// Model is the Bubble Tea model: the sectioned listing plus an optional
// detail editor on top of it.
type Model struct {
	src  Source
	opts Options
	log  *slog.Logger

	list    list.Model
	keys    listKeyMap
	section model.Category
	editor  *editor
	undo    *removed

	image  string
	status string
	width  int
	height int
}

// New builds the model; it does not start a program.
func New(src Source, opts Options) Model {
	if opts.DateFormat == "" {
		opts.DateFormat = "Monday, Jan 2"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: imageTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	section := opts.Category
	if !section.Valid() {
		section = model.DefaultCategory
	}

	keys := newListKeyMap()
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(true)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle()
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.extra
	l.AdditionalFullHelpKeys = keys.extra

	m := Model{
		src:     src,
		opts:    opts,
		log:     logger,
		list:    l,
		keys:    keys,
		section: section,
		width:   80,
		height:  24,
	}
	m.refresh("")
	return m
}

// Run starts the interactive program and blocks until it quits.
func Run(src Source, opts Options) error {
	p := tea.NewProgram(New(src, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.opts.HeaderImageURL == "" {
		return nil
	}
	return fetchImage(m.opts.HTTPClient, m.opts.HeaderImageURL, imageCols, m.log)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		if m.editor != nil {
			m.editor.setWidth(m.width - 4)
		}
		return m, nil

	case imageLoadedMsg:
		if msg.art != "" {
			m.image = msg.art
			m.resize()
		}
		return m, nil

	case openEditorMsg:
		opts := []session.Option{
			session.WithPlaceholder(m.opts.Placeholder),
			session.WithCategory(m.section),
		}
		m.editor = newEditor(session.Begin(msg.todo, opts...), m.width-4)
		m.status = ""
		return m, m.editor.Init()

	case createdMsg:
		m.editor = nil
		if err := m.src.Create(msg.todo); err != nil {
			m.log.Error("create failed", "err", err)
			m.status = "create failed: " + err.Error()
			return m, nil
		}
		m.log.Info("todo created", "id", msg.todo.ID, "category", msg.todo.Category)
		m.section = msg.todo.Category
		m.status = "added"
		return m, m.refresh(msg.todo.ID)

	case updatedMsg:
		m.editor = nil
		if err := m.src.Update(msg.todo); err != nil {
			m.log.Error("update failed", "id", msg.todo.ID, "err", err)
			m.status = "update failed: " + err.Error()
			return m, nil
		}
		m.log.Info("todo updated", "id", msg.todo.ID)
		m.section = msg.todo.Category
		m.status = "saved"
		return m, m.refresh(msg.todo.ID)

	case cancelledMsg:
		m.editor = nil
		m.status = ""
		if msg.reason == session.ReasonEmptyTitle {
			m.status = "discarded: title was empty"
		}
		return m, nil
	}

	if m.editor != nil {
		return m, m.editor.Update(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(km, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(km, m.keys.Add):
			return m, openEditor(nil)
		case key.Matches(km, m.keys.Edit):
			if td, ok := m.selected(); ok {
				return m, openEditor(&td)
			}
			return m, nil
		case key.Matches(km, m.keys.Delete):
			return m, m.deleteSelected()
		case key.Matches(km, m.keys.Undo):
			return m, m.undoDelete()
		case key.Matches(km, m.keys.NextSection):
			return m, m.switchSection(1)
		case key.Matches(km, m.keys.PrevSection):
			return m, m.switchSection(-1)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selected resolves the highlighted row to its todo by ID, so the row index
// of a filtered section never leaks into the full enumeration.
func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return m.src.Get(it.todo.ID)
}

func (m *Model) deleteSelected() tea.Cmd {
	td, ok := m.selected()
	if !ok {
		return nil
	}
	pos := m.src.IndexOf(td.ID)
	if err := m.src.DeleteAt(pos); err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			m.log.Warn("delete of vanished todo", "id", td.ID, "err", err)
		}
		m.status = "delete failed: " + err.Error()
		return nil
	}
	m.log.Info("todo deleted", "id", td.ID, "position", pos)
	m.status = "removed"
	m.undo = &removed{todo: td, pos: pos}

	idx := m.list.Index()
	cmd := m.refresh("")
	if n := len(m.list.VisibleItems()); idx >= n && n > 0 {
		idx = n - 1
	}
	m.list.Select(idx)
	return cmd
}

// undoDelete puts the last deleted todo back at its old position.
func (m *Model) undoDelete() tea.Cmd {
	if m.undo == nil {
		return nil
	}
	r := *m.undo
	m.undo = nil
	if err := m.src.InsertAt(r.pos, r.todo); err != nil {
		m.log.Error("undo failed", "id", r.todo.ID, "err", err)
		m.status = "undo failed: " + err.Error()
		return nil
	}
	m.log.Info("todo restored", "id", r.todo.ID, "position", r.pos)
	m.section = r.todo.Category
	m.status = "restored"
	return m.refresh(r.todo.ID)
}

func (m *Model) switchSection(step int) tea.Cmd {
	cats := model.Categories()
	i := 0
	for j, c := range cats {
		if c == m.section {
			i = j
		}
	}
	m.section = cats[(i+step+len(cats))%len(cats)]
	m.status = ""
	m.list.ResetFilter()
	return m.refresh("")
}

// refresh re-queries the current section and optionally selects id.
func (m *Model) refresh(selectID string) tea.Cmd {
	todos := m.src.FilterByCategory(m.section)
	items := make([]list.Item, 0, len(todos))
	sel := 0
	for i, td := range todos {
		items = append(items, listItem{todo: td})
		if td.ID == selectID {
			sel = i
		}
	}
	cmd := m.list.SetItems(items)
	m.list.Title = m.tabs()
	m.list.Select(sel)
	return cmd
}

func (m *Model) resize() {
	h := m.height - lipgloss.Height(m.header()) - 4
	if m.status != "" {
		h--
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) tabs() string {
	t := ui.Current()
	cells := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		label := fmt.Sprintf(" %s %d ", c.Title(), len(m.src.FilterByCategory(c)))
		if c == m.section {
			cells = append(cells, t.Selected.Render(label))
		} else {
			cells = append(cells, t.Muted.Render(label))
		}
	}
	return strings.Join(cells, " ")
}

func (m Model) header() string {
	t := ui.Current()
	all := m.src.All()
	sum := model.Counts(all)
	lines := []string{
		ui.Header("Todos", sum),
		t.Muted.Render(m.opts.Now().Format(m.opts.DateFormat)),
		t.Muted.Render(ui.ProgressBar(sum.Complete, sum.Total, 28)),
	}
	text := strings.Join(lines, "\n")
	if m.image == "" {
		return text
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.image, "  ", text)
}

func (m Model) View() string {
	m.resize()
	if m.editor != nil {
		return ui.PanelString([]string{m.editor.View()})
	}
	parts := []string{m.header(), "", m.list.View()}
	if m.status != "" {
		parts = append(parts, ui.Current().Muted.Render(m.status))
	}
	return ui.PanelString(parts)
}
