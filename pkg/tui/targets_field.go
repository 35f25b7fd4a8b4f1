package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cisan/caripiutang/pkg/mask"
)

// TargetsField is the grouped multi-amount mask. The raw value is the source
// of truth; the surface only ever shows its formatted display string.
type TargetsField struct {
	caretLine
	engine mask.Engine
	raw    string
	keys   FieldKeyMap
	clip   Clipboard
}

func NewTargetsField(grouping rune, clip Clipboard) *TargetsField {
	return &TargetsField{
		caretLine: newCaretLine(targetsFieldID),
		engine:    mask.NewEngine(mask.NewFormatter(grouping)),
		keys:      DefaultFieldKeyMap(),
		clip:      clip,
	}
}

func (f *TargetsField) Value() string      { return f.raw }
func (f *TargetsField) Normalized() string { return mask.Normalize(f.raw) }
func (f *TargetsField) HasPositive() bool  { return mask.HasPositive(f.raw) }

// Display returns the text currently on the surface.
func (f *TargetsField) Display() string { return f.line.Text() }

// Caret returns the caret currently on the surface.
func (f *TargetsField) Caret() int { return f.line.Caret() }

func (f *TargetsField) Reset() {
	f.raw = ""
	f.caretLine.reset()
}

func (f *TargetsField) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case caretRestoreMsg:
		f.restore(msg)
		return nil

	case pasteMsg:
		if msg.field != f.id {
			return nil
		}
		f.flush()
		return f.insert(msg.text)

	case tea.KeyMsg:
		f.flush()
		if msg.Paste {
			return f.insert(string(msg.Runes))
		}
		if f.move(msg, f.keys) {
			return nil
		}
		switch {
		case key.Matches(msg, f.keys.Paste):
			return readClipboard(f.clip, f.id)
		case key.Matches(msg, f.keys.Backspace):
			return f.keyDown(mask.KeyBackspace)
		case key.Matches(msg, f.keys.Delete):
			return f.keyDown(mask.KeyDelete)
		case msg.Type == tea.KeyRunes && string(msg.Runes) == string(mask.Separator):
			return f.keyDown(mask.KeySeparator)
		case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
			return f.insert(string(msg.Runes))
		}
	}
	return nil
}

func (f *TargetsField) state() mask.State {
	return mask.State{
		Raw:     f.raw,
		Display: f.line.Text(),
		Caret:   f.line.Caret(),
		Anchor:  f.line.Anchor(),
	}
}

func (f *TargetsField) keyDown(k mask.Key) tea.Cmd {
	out := f.engine.KeyDown(f.state(), k)
	if out.Prevented {
		f.raw = out.State.Raw
		return f.commit(out.State.Display, out.State.Caret)
	}

	switch k {
	case mask.KeyBackspace:
		f.line.DeleteBackward()
	case mask.KeyDelete:
		f.line.DeleteForward()
	case mask.KeySeparator:
		f.line.InsertText(string(mask.Separator))
	}
	return f.changed()
}

func (f *TargetsField) insert(text string) tea.Cmd {
	f.line.InsertText(text)
	return f.changed()
}

func (f *TargetsField) changed() tea.Cmd {
	st := f.engine.Changed(f.line.Text(), f.line.Caret())
	f.raw = st.Raw
	return f.commit(st.Display, st.Caret)
}

func (f *TargetsField) View(width int, focused bool) string {
	start, end, _ := f.line.Selection()
	return NewInputRenderer(width).RenderInputField(
		f.line.Text(), f.line.Caret(), start, end, targetsPlaceholder, focused)
}
