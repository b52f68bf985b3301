package tui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/teatest"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

type fixture struct {
	store *store.Store
	todos []model.Todo
}

// life: laundry, groceries   work: standup, review
func newFixture(t *testing.T) fixture {
	t.Helper()
	todos := []model.Todo{
		model.NewTodo("laundry", "", model.PriorityLow, model.CategoryLife),
		model.NewTodo("standup", "daily", model.PriorityHigh, model.CategoryWork),
		model.NewTodo("groceries", "milk, eggs", model.PriorityMedium, model.CategoryLife),
		model.NewTodo("review", "", model.PriorityHigh, model.CategoryWork),
	}
	return fixture{store: store.New(store.WithTodos(todos...)), todos: todos}
}

func newDriver(t *testing.T, src Source, opts Options) *teatest.Driver {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	d := teatest.New(t, New(src, opts), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func current(t *testing.T, d *teatest.Driver) Model {
	t.Helper()
	m, ok := d.Model.(Model)
	require.True(t, ok, "unexpected model type %T", d.Model)
	return m
}

func visibleTitles(m Model) []string {
	var out []string
	for _, it := range m.list.VisibleItems() {
		out = append(out, it.(listItem).todo.Title)
	}
	return out
}

func TestListing_ShowsDefaultSectionAndHeader(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	m := current(t, d)
	assert.Equal(t, model.CategoryLife, m.section)
	assert.Equal(t, []string{"laundry", "groceries"}, visibleTitles(m))

	view := d.View()
	assert.Contains(t, view, "Todos")
	assert.Contains(t, view, "Sunday, Oct 18")
	assert.Contains(t, view, "Life 2")
	assert.Contains(t, view, "Work 2")
	assert.Contains(t, view, "laundry")
	assert.NotContains(t, view, "standup")
}

func TestListing_TabSwitchesSection(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressTab()
	m := current(t, d)
	assert.Equal(t, model.CategoryWork, m.section)
	assert.Equal(t, []string{"standup", "review"}, visibleTitles(m))

	d.PressShiftTab()
	assert.Equal(t, model.CategoryLife, current(t, d).section)
}

func TestListing_InitialSectionOption(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{Category: model.CategoryWork})
	assert.Equal(t, []string{"standup", "review"}, visibleTitles(current(t, d)))
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestAdd_CreatesInCurrentSectionWithMediumPriority(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	d.PressTab() // work

	d.PressKey('a')
	m := current(t, d)
	require.NotNil(t, m.editor)
	assert.Contains(t, d.View(), "New todo")
	assert.Contains(t, d.View(), session.DefaultPlaceholder)

	d.Type("Deploy v2")
	d.PressCtrlS()

	m = current(t, d)
	assert.Nil(t, m.editor)
	assert.Equal(t, "added", m.status)
	require.Equal(t, 5, f.store.Len())

	created := f.store.All()[4]
	assert.Equal(t, "Deploy v2", created.Title)
	assert.Equal(t, model.PriorityMedium, created.Priority)
	assert.Equal(t, model.CategoryWork, created.Category)
	assert.Empty(t, created.TextContent, "placeholder is never stored")
	assert.Equal(t, []string{"standup", "review", "Deploy v2"}, visibleTitles(m))
	assert.Equal(t, 2, m.list.Index(), "new todo is selected")
}

func TestAdd_BodyAndPriorityControls(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressKey('a')
	d.Type("Plan trip")
	d.PressEnter() // title -> body
	d.Type("book hotel")
	d.PressTab() // body -> controls
	d.PressKey('1')
	d.PressKey('w')
	d.PressCtrlS()

	require.Equal(t, 5, f.store.Len())
	created := f.store.All()[4]
	assert.Equal(t, "book hotel", created.TextContent)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	assert.Equal(t, model.CategoryWork, created.Category)
	assert.Equal(t, model.CategoryWork, current(t, d).section, "listing follows the saved todo")
}

func TestAdd_DigitsInTitleAreText(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressKey('a')
	d.Type("Call 123")
	d.PressCtrlS()

	created := f.store.All()[4]
	assert.Equal(t, "Call 123", created.Title)
	assert.Equal(t, model.PriorityMedium, created.Priority)
}

func TestAdd_EmptyTitleIsDiscarded(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressKey('a')
	d.PressCtrlS()

	m := current(t, d)
	assert.Nil(t, m.editor)
	assert.Equal(t, 4, f.store.Len())
	assert.Contains(t, d.View(), "discarded: title was empty")
}

func TestAdd_EscCancels(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressKey('a')
	d.Type("never mind")
	d.PressEsc()

	assert.Nil(t, current(t, d).editor)
	assert.Equal(t, 4, f.store.Len())
	assert.False(t, d.Quitting)
}

func TestEdit_SelectsByIDInFilteredSection(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	// Row 1 of "life" is groceries; row 1 of the full list is standup.
	d.PressDown()
	d.PressEnter()

	m := current(t, d)
	require.NotNil(t, m.editor)
	assert.Equal(t, "groceries", m.editor.title.Value())
	assert.Contains(t, d.View(), "Edit todo")
	assert.Contains(t, d.View(), "milk, eggs")
}

func TestEdit_UpdatesInPlace(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	target := f.todos[2] // groceries

	d.PressDown()
	d.PressKey('e')
	d.Type(" + bread")
	d.PressTab()
	d.PressTab()
	d.PressKey('1')
	d.PressCtrlS()

	got, ok := f.store.Get(target.ID)
	require.True(t, ok)
	assert.Equal(t, "groceries + bread", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, "milk, eggs", got.TextContent)
	assert.Equal(t, 2, f.store.IndexOf(target.ID))
	assert.Equal(t, "saved", current(t, d).status)
}

func TestEdit_ClearingTitleLeavesTodoUnmodified(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	before := f.todos[0]

	d.PressEnter()
	for range before.Title {
		d.Press(tea.KeyBackspace)
	}
	d.PressCtrlS()

	got, _ := f.store.Get(before.ID)
	assert.Equal(t, before, got)
}

func TestEdit_PlaceholderRestoredOnBlur(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{Placeholder: "Notes go here"})

	d.PressKey('a')
	assert.Contains(t, d.View(), "Notes go here")

	d.PressTab() // into body: placeholder cleared
	m := current(t, d)
	assert.Empty(t, m.editor.body.Value())

	d.PressTab() // leave body untouched: placeholder back
	assert.Contains(t, d.View(), "Notes go here")

	d.PressShiftTab()
	d.PressShiftTab()
	d.Type("x")
	d.PressCtrlS()
	assert.Empty(t, f.store.All()[4].TextContent)
}

func TestDelete_RemovesSelectedByID(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressDown() // groceries, position 2 in the full enumeration
	d.PressKey('d')

	assert.Equal(t, 3, f.store.Len())
	_, ok := f.store.Get(f.todos[2].ID)
	assert.False(t, ok)
	_, ok = f.store.Get(f.todos[1].ID)
	assert.True(t, ok, "row index of the section must not hit the full list")

	m := current(t, d)
	assert.Equal(t, []string{"laundry"}, visibleTitles(m))
	assert.Equal(t, 0, m.list.Index())
	assert.Equal(t, "removed", m.status)
}

func TestUndo_RestoresAtOldPosition(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressDown()
	d.PressKey('d')
	d.PressTab() // undo jumps back to the todo's own section
	d.PressKey('u')

	assert.Equal(t, f.todos, f.store.All())
	m := current(t, d)
	assert.Equal(t, model.CategoryLife, m.section)
	assert.Equal(t, "restored", m.status)
	assert.Equal(t, "groceries", m.list.SelectedItem().(listItem).todo.Title)

	d.PressKey('u')
	assert.Equal(t, 4, f.store.Len(), "only one undo per delete")
}

func TestUndo_NothingDeleted(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	d.PressKey('u')
	assert.Equal(t, f.todos, f.store.All())
	assert.Empty(t, current(t, d).status)
}

func TestDelete_EmptySectionIsNoop(t *testing.T) {
	st := store.New()
	d := newDriver(t, st, Options{})
	d.PressKey('d')
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, current(t, d).status)
}

func TestFilter_DoesNotTriggerShortcuts(t *testing.T) {
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})

	d.PressKey('/')
	d.Type("ad")
	assert.Nil(t, current(t, d).editor, "'a' typed into the filter, not add")
	assert.Equal(t, 4, f.store.Len(), "'d' typed into the filter, not delete")
}

func pngServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/garbage", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHeaderImage_LoadedInBackground(t *testing.T) {
	srv := pngServer(t)
	f := newFixture(t)
	m := New(f.store, Options{HeaderImageURL: srv.URL + "/ok.png", HTTPClient: srv.Client(), Now: fixedNow})

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, imageLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	got := updated.(Model)
	assert.Contains(t, got.image, "▀")
	assert.Equal(t, 4, lipgloss.Height(got.image))
	assert.Contains(t, got.View(), "▀")
}

func TestHeaderImage_FailureKeepsPreviousImage(t *testing.T) {
	srv := pngServer(t)
	f := newFixture(t)
	d := newDriver(t, f.store, Options{})
	d.Send(imageLoadedMsg{art: "prior"})

	for _, path := range []string{"/garbage", "/missing"} {
		msg := fetchImage(srv.Client(), srv.URL+path, imageCols, current(t, d).log)()
		assert.Nil(t, msg, path)
	}
	assert.Equal(t, "prior", current(t, d).image)
}

func TestRenderHalfBlocks_Size(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	art := renderHalfBlocks(img, 10)
	assert.Equal(t, 2, lipgloss.Height(art))
	assert.Equal(t, 10, lipgloss.Width(art))
	assert.Empty(t, renderHalfBlocks(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10))
}
