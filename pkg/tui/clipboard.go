package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Clipboard reads text for ctrl+v paste. Read failures are reported on the
// status bar and never reach the fields.
type Clipboard interface {
	ReadText() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

type pasteMsg struct {
	field string
	text  string
}

func readClipboard(c Clipboard, field string) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		text, err := c.ReadText()
		if err != nil {
			return StatusMsg("Clipboard tidak dapat dibaca: " + err.Error())
		}
		return pasteMsg{field: field, text: text}
	}
}
