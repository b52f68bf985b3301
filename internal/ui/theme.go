package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error lipgloss.Style
	Selected, DoneText                   lipgloss.Style

	High, Medium, Low, Complete lipgloss.Style

	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	BarFull, BarEmpty        string
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var current = build("classic")

// SetTheme switches the active theme. Unknown names are an error and leave
// the current theme in place.
func SetTheme(name string) error {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = "classic"
	}
	for _, t := range Themes {
		if t == n {
			current = build(n)
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(Themes, ", "))
}

// Current exposes what renderers need.
func Current() Theme { return current }

func build(name string) Theme {
	switch name {
	case "neon":
		return Theme{
			Name:  name,
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted: lipgloss.NewStyle().Faint(true), Accent: fg("14"),
			Success: fg("10"), Error: fg("9").Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			DoneText: lipgloss.NewStyle().Faint(true).Strikethrough(true),
			High:     fg("201"), Medium: fg("226"), Low: fg("51"), Complete: fg("245"),
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  name,
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain,
			Selected: plain.Reverse(true), DoneText: plain,
			High: plain, Medium: plain, Low: plain, Complete: plain,
			Border: lipgloss.NormalBorder(), BorderColor: lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			BarFull: "#", BarEmpty: ".",
		}
	default: // classic
		return Theme{
			Name:  "classic",
			Title: lipgloss.NewStyle().Bold(true),
			Muted: lipgloss.NewStyle().Faint(true), Accent: fg("12"),
			Success: fg("42"), Error: fg("9").Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			DoneText: lipgloss.NewStyle().Faint(true).Strikethrough(true),
			High:     fg("196"), Medium: fg("214"), Low: fg("34"), Complete: fg("244"),
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

// PriorityStyle is the colour for p.
func (t Theme) PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return t.High
	case model.PriorityMedium:
		return t.Medium
	case model.PriorityLow:
		return t.Low
	default:
		return t.Complete
	}
}

// PriorityBadge is a short fixed-width label like "HIGH".
func (t Theme) PriorityBadge(p model.Priority) string {
	label := strings.ToUpper(p.String())
	if len(label) > 4 {
		label = label[:4]
	}
	return t.PriorityStyle(p).Render(fmt.Sprintf("%-4s", label))
}

// Box is the checkbox glyph for a todo.
func (t Theme) Box(td model.Todo) string {
	if td.Done() {
		return t.Success.Render(t.BoxChecked)
	}
	return t.PriorityStyle(td.Priority).Render(t.BoxUnchecked)
}
