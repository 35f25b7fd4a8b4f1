package tui

import "github.com/charmbracelet/bubbles/key"

// FieldKeyMap holds the editing bindings shared by the numeric fields.
type FieldKeyMap struct {
	Left, Right           key.Binding
	ShiftLeft, ShiftRight key.Binding
	Home, End             key.Binding
	SelectAll             key.Binding

	Backspace, Delete key.Binding
	Commit            key.Binding
	Paste             key.Binding
}

func DefaultFieldKeyMap() FieldKeyMap {
	return FieldKeyMap{
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "select all")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add amount")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

// AppKeyMap holds the form-level bindings.
type AppKeyMap struct {
	Next, Prev key.Binding
	Submit     key.Binding
	ClearFile  key.Binding
	Reset      key.Binding
	Download   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "proses file")),
		ClearFile: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "hapus file")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset form")),
		Download:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "unduh hasil")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.ClearFile, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	fields := DefaultFieldKeyMap()
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Download},
		{k.ClearFile, k.Reset, k.Help, k.Quit},
		{fields.Commit, fields.Paste, fields.SelectAll, fields.Backspace},
	}
}
