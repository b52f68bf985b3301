package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Add, Edit, Delete, Undo, NextSection, PrevSection, Quit key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeyMap) extra() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Undo, k.NextSection}
}

type editorKeyMap struct {
	Save, Cancel, NextField, PrevField key.Binding
	High, Medium, Low                  key.Binding
	Life, Work                         key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		High:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "high")),
		Medium:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "medium")),
		Low:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "low")),
		Life:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "life")),
		Work:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "work")),
	}
}

// ShortHelp implements help.KeyMap.
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.NextField}
}

// FullHelp implements help.KeyMap.
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Cancel, k.NextField, k.PrevField},
		{k.High, k.Medium, k.Low, k.Life, k.Work},
	}
}

// controlsHelp is shown while the priority row has focus.
func (k editorKeyMap) controlsHelp() []key.Binding {
	return []key.Binding{k.High, k.Medium, k.Low, k.Life, k.Work, k.Save, k.Cancel}
}
