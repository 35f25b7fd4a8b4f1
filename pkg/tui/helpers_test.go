package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func pasted(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Paste: true}
}

// deliver runs cmd and hands its message back to the field, the way the
// program loop delivers it after the next render.
func deliver(f updater, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = f.Update(msg)
	}
}

// typeText sends s one key at a time and lets every caret restore land.
func typeText(f updater, s string) {
	for _, r := range s {
		deliver(f, f.Update(runes(string(r))))
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (c fakeClipboard) ReadText() (string, error) { return c.text, c.err }

var errClipboard = errors.New("no clipboard")
