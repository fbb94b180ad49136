package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board's bindings. The editing bindings are shown in the
// help footer only; the title-field shortcuts themselves are resolved by
// board.KeyMap so configured extras apply.
type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	EditTitle  key.Binding
	EditNote   key.Binding
	AddNote    key.Binding
	RemoveNote key.Binding
	AddRow     key.Binding
	RemoveRow  key.Binding
	ToggleLog  key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding

	NextRow  key.Binding
	OpenNote key.Binding
	Newline  key.Binding
	Done     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		EditTitle:  key.NewBinding(key.WithKeys("enter", "e", "i"), key.WithHelp("enter", "edit")),
		EditNote:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit note")),
		AddNote:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add note")),
		RemoveNote: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "remove note")),
		AddRow:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		RemoveRow:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove row")),
		ToggleLog:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "activity")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),

		NextRow:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next row")),
		OpenNote: key.NewBinding(key.WithKeys("shift+enter"), key.WithHelp("shift+enter", "note")),
		Newline:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Done:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

// helpKeys adapts keyMap to help.KeyMap for the current edit mode.
type helpKeys struct {
	keys keyMap
	mode editMode
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.keys
	switch h.mode {
	case modeEditTitle:
		return []key.Binding{k.NextRow, k.OpenNote, k.Done}
	case modeEditNote:
		return []key.Binding{k.Newline, k.Done}
	}
	return []key.Binding{k.Toggle, k.EditTitle, k.AddRow, k.AddNote, k.RemoveRow, k.Help, k.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	if h.mode != modeBrowse {
		return [][]key.Binding{h.ShortHelp()}
	}
	k := h.keys
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Toggle, k.EditTitle, k.EditNote, k.AddRow, k.RemoveRow},
		{k.AddNote, k.RemoveNote, k.ToggleLog, k.Help, k.Quit},
	}
}
