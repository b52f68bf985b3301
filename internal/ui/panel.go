package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/tada/internal/model"
)

// MaxTitleWidth is the display width titles are cut to in static listings.
const MaxTitleWidth = 60

// ProgressBar renders a bar with percentage. Widths below 5 are raised to 5.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Truncate cuts s to width display cells, wide runes included.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// PanelString frames lines with the current theme's border.
func PanelString(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Panel writes a framed box to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}

// Header is the "Todos  ✔ n  • n  Total n" line.
func Header(title string, s model.Summary) string {
	t := current
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(title),
		t.Success.Render(t.SymDone), s.Complete,
		t.Medium.Render(t.SymPending), s.Pending(),
		t.Accent.Render("Total"), s.Total,
	)
}

// TodoLine renders one todo: index, box, badge, title.
// idx <= 0 omits the index column.
func TodoLine(idx int, td model.Todo, width int) string {
	t := current
	title := Truncate(td.Title, width)
	if td.Done() {
		title = t.DoneText.Render(title)
	}
	line := fmt.Sprintf("%s %s %s", t.Box(td), t.PriorityBadge(td.Priority), title)
	if idx > 0 {
		line = t.Muted.Render(fmt.Sprintf("%2d.", idx)) + " " + line
	}
	return line
}

// FlatLines renders todos one per line with 1-based indexes.
func FlatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{current.Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		out = append(out, TodoLine(i+1, td, MaxTitleWidth))
	}
	return out
}

// SectionLines renders one titled section, "(none)" when empty.
func SectionLines(title string, todos []model.Todo) []string {
	lines := []string{current.Accent.Render(title)}
	if len(todos) == 0 {
		return append(lines, current.Muted.Render("(none)"))
	}
	return append(lines, FlatLines(todos)...)
}
