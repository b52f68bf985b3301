package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
)

// openEditorMsg asks the listing to open the detail screen.
// A nil todo opens it in create mode.
type openEditorMsg struct{ todo *model.Todo }

type createdMsg struct{ todo model.Todo }

type updatedMsg struct{ todo model.Todo }

type cancelledMsg struct{ reason session.Reason }

// imageLoadedMsg carries a rendered header image back to the update loop.
type imageLoadedMsg struct{ art string }

func openEditor(td *model.Todo) tea.Cmd {
	return func() tea.Msg { return openEditorMsg{todo: td} }
}

func outcomeCmd(res session.Result) tea.Cmd {
	return func() tea.Msg {
		switch res.Outcome {
		case session.Created:
			return createdMsg{todo: res.Todo}
		case session.Updated:
			return updatedMsg{todo: res.Todo}
		default:
			return cancelledMsg{reason: res.Reason}
		}
	}
}
