package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cisan/caripiutang/pkg/surface"
)

// caretRestoreMsg carries a caret offset computed for text that the surface
// had not rendered yet. It is applied once it arrives, after the render that
// shows the new text; a newer edit bumps seq and voids older restores.
type caretRestoreMsg struct {
	field string
	seq   uint64
	caret int
}

// caretLine is a surface line whose caret is restored in two phases: commit
// stores the text immediately and returns the command that delivers the
// caret.
type caretLine struct {
	id   string
	line *surface.Line

	seq        uint64
	pending    int
	hasPending bool
}

func newCaretLine(id string) caretLine {
	return caretLine{id: id, line: surface.New("")}
}

func (c *caretLine) commit(display string, caret int) tea.Cmd {
	c.line.SetText(display)
	c.seq++
	c.pending = caret
	c.hasPending = true

	msg := caretRestoreMsg{field: c.id, seq: c.seq, caret: caret}
	return func() tea.Msg { return msg }
}

// restore applies msg if it is the latest restore for this line.
func (c *caretLine) restore(msg caretRestoreMsg) bool {
	if msg.field != c.id || msg.seq != c.seq || !c.hasPending {
		return false
	}
	c.line.SetCaret(msg.caret)
	c.hasPending = false
	return true
}

// flush applies a pending caret before the next input is handled.
func (c *caretLine) flush() {
	if c.hasPending {
		c.line.SetCaret(c.pending)
		c.hasPending = false
	}
}

func (c *caretLine) reset() {
	c.line = surface.New("")
	c.seq++
	c.hasPending = false
}

// move handles caret and selection keys. It reports whether msg was one.
func (c *caretLine) move(msg tea.KeyMsg, keys FieldKeyMap) bool {
	switch {
	case key.Matches(msg, keys.Left):
		c.line.Move(surface.DirLeft, false)
	case key.Matches(msg, keys.Right):
		c.line.Move(surface.DirRight, false)
	case key.Matches(msg, keys.ShiftLeft):
		c.line.Move(surface.DirLeft, true)
	case key.Matches(msg, keys.ShiftRight):
		c.line.Move(surface.DirRight, true)
	case key.Matches(msg, keys.Home):
		c.line.Move(surface.DirHome, false)
	case key.Matches(msg, keys.End):
		c.line.Move(surface.DirEnd, false)
	case key.Matches(msg, keys.SelectAll):
		c.line.SelectAll()
	default:
		return false
	}
	return true
}
