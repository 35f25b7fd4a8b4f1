package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cisan/caripiutang/pkg/mask"
)

// ToleranceField accepts a single grouped amount. Everything but digits is
// dropped; the caret keeps its digit offset across regrouping.
type ToleranceField struct {
	caretLine
	formatter mask.Formatter
	keys      FieldKeyMap
	clip      Clipboard
}

func NewToleranceField(grouping rune, clip Clipboard) *ToleranceField {
	return &ToleranceField{
		caretLine: newCaretLine(toleranceFieldID),
		formatter: mask.NewFormatter(grouping),
		keys:      DefaultFieldKeyMap(),
		clip:      clip,
	}
}

// Value returns the grouped text as shown.
func (f *ToleranceField) Value() string { return f.line.Text() }

func (f *ToleranceField) Reset() { f.caretLine.reset() }

func (f *ToleranceField) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case caretRestoreMsg:
		f.restore(msg)
		return nil

	case pasteMsg:
		if msg.field != f.id {
			return nil
		}
		f.flush()
		f.line.InsertText(msg.text)
		return f.changed()

	case tea.KeyMsg:
		f.flush()
		if msg.Paste {
			f.line.InsertText(string(msg.Runes))
			return f.changed()
		}
		if f.move(msg, f.keys) {
			return nil
		}
		switch {
		case key.Matches(msg, f.keys.Paste):
			return readClipboard(f.clip, f.id)
		case key.Matches(msg, f.keys.Backspace):
			f.skipGrouping(-1)
			f.line.DeleteBackward()
			return f.changed()
		case key.Matches(msg, f.keys.Delete):
			f.skipGrouping(1)
			f.line.DeleteForward()
			return f.changed()
		case msg.Type == tea.KeyRunes:
			f.line.InsertText(string(msg.Runes))
			return f.changed()
		}
	}
	return nil
}

// skipGrouping steps the caret over a grouping mark so a deletion removes
// the digit beyond it.
func (f *ToleranceField) skipGrouping(dir int) {
	if _, _, ok := f.line.Selection(); ok {
		return
	}
	rs := []rune(f.line.Text())
	pos := f.line.Caret()
	if dir < 0 {
		pos--
	}
	if pos < 0 || pos >= len(rs) || rs[pos] != f.formatter.Grouping {
		return
	}
	f.line.SetCaret(f.line.Caret() + dir)
}

func (f *ToleranceField) changed() tea.Cmd {
	text := f.line.Text()
	digits := mask.DigitsBeforeCaret(text, f.line.Caret())
	display := f.formatter.FormatDigits(text)
	return f.commit(display, mask.CaretAfterNthDigit(display, digits))
}

func (f *ToleranceField) View(width int, focused bool) string {
	start, end, _ := f.line.Selection()
	return NewInputRenderer(width).RenderInputField(
		f.line.Text(), f.line.Caret(), start, end, tolerancePlaceholder, focused)
}
