package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cisan/caripiutang/pkg/chips"
	"github.com/cisan/caripiutang/pkg/mask"
)

// ChipField enters amounts one at a time; each committed amount becomes a
// removable chip. With an empty buffer, left/right select a chip and
// delete removes it.
type ChipField struct {
	store     chips.Store
	formatter mask.Formatter
	keys      FieldKeyMap
	clip      Clipboard

	// selected indexes a chip, or -1 when the buffer has focus.
	selected int
}

func NewChipField(grouping rune, clip Clipboard) *ChipField {
	return &ChipField{
		store:     chips.New(nil),
		formatter: mask.NewFormatter(grouping),
		keys:      DefaultFieldKeyMap(),
		clip:      clip,
		selected:  -1,
	}
}

// Store exposes the current token state.
func (f *ChipField) Store() chips.Store { return f.store }

func (f *ChipField) Value() string      { return f.store.Value() }
func (f *ChipField) Normalized() string { return mask.Normalize(f.store.Value()) }
func (f *ChipField) HasPositive() bool  { return mask.HasPositive(f.store.Value()) }

func (f *ChipField) Reset() {
	f.store = f.store.Clear()
	f.selected = -1
}

func (f *ChipField) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pasteMsg:
		if msg.field == targetsFieldID {
			f.paste(msg.text)
		}
		return nil

	case tea.KeyMsg:
		if msg.Paste {
			f.paste(string(msg.Runes))
			return nil
		}
		switch {
		case key.Matches(msg, f.keys.Paste):
			return readClipboard(f.clip, targetsFieldID)
		case key.Matches(msg, f.keys.Commit):
			f.store = f.store.CommitBuffer()
			f.selected = -1
		case key.Matches(msg, f.keys.Backspace):
			if f.selected >= 0 {
				f.removeSelected()
				return nil
			}
			f.store = f.store.Backspace()
		case key.Matches(msg, f.keys.Delete):
			if f.selected >= 0 {
				f.removeSelected()
			}
		case key.Matches(msg, f.keys.Left):
			f.moveSelection(-1)
		case key.Matches(msg, f.keys.Right):
			f.moveSelection(1)
		case msg.Type == tea.KeyRunes && string(msg.Runes) == string(mask.Separator):
			f.store = f.store.CommitBuffer()
			f.selected = -1
		case msg.Type == tea.KeyRunes:
			f.store = f.store.Type(string(msg.Runes))
			f.selected = -1
		}
	}
	return nil
}

func (f *ChipField) paste(text string) {
	f.store = f.store.Paste(text)
	f.selected = -1
}

func (f *ChipField) moveSelection(delta int) {
	n := f.store.Len()
	if n == 0 || f.store.Buffer() != "" {
		f.selected = -1
		return
	}
	switch {
	case f.selected < 0 && delta < 0:
		f.selected = n - 1
	case f.selected < 0:
		return
	default:
		f.selected += delta
	}
	if f.selected < 0 {
		f.selected = 0
	}
	if f.selected >= n {
		f.selected = -1
	}
}

func (f *ChipField) removeSelected() {
	tokens := f.store.Tokens()
	if f.selected < 0 || f.selected >= len(tokens) {
		return
	}
	f.store = f.store.RemoveByID(tokens[f.selected].ID)
	if f.selected >= f.store.Len() {
		f.selected = f.store.Len() - 1
	}
}

func (f *ChipField) View(width int, focused bool) string {
	tokens := f.store.Tokens()
	parts := make([]string, 0, len(tokens)+1)
	for i, tok := range tokens {
		chip := f.formatter.FormatDigits(tok.Value) + " ×"
		parts = append(parts, GetChipStyle(focused && i == f.selected).Render(chip))
	}

	buffer := f.formatter.FormatDigits(f.store.Buffer())
	placeholder := ""
	if len(tokens) == 0 {
		placeholder = targetsPlaceholder
	}
	bufferWidth := width - lipgloss.Width(strings.Join(parts, " ")) - 1
	if bufferWidth < 12 {
		bufferWidth = 12
	}
	caret := len([]rune(buffer))
	parts = append(parts, NewInputRenderer(bufferWidth).RenderInputField(
		buffer, caret, 0, 0, placeholder, focused && f.selected < 0))

	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " "))
}
