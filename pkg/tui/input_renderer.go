package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InputRenderer provides consistent rendering for input fields across the TUI
type InputRenderer struct {
	Width int
}

// NewInputRenderer creates a new input renderer
func NewInputRenderer(width int) *InputRenderer {
	return &InputRenderer{Width: width}
}

var (
	inputCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(ColorActive)).
				Foreground(lipgloss.Color(ColorWhite)).
				Bold(true)

	inputSelectionStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(ColorPrimary)).
				Foreground(lipgloss.Color(ColorWhite))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))
)

// RenderInputField renders text with the caret at cursorPos and the runes in
// [selStart, selEnd) highlighted. The caret is drawn only when focused.
func (ir *InputRenderer) RenderInputField(
	text string,
	cursorPos int,
	selStart, selEnd int,
	placeholder string,
	focused bool,
) string {
	inputFieldStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(ColorSelected)).
		Foreground(lipgloss.Color(ColorNormal)).
		Width(ir.Width).
		Padding(0, 1)

	var content strings.Builder

	if text == "" {
		if focused {
			content.WriteString(inputCursorStyle.Render(" "))
		}
		if placeholder != "" {
			content.WriteString(inputPlaceholderStyle.Render(placeholder))
		}
		return inputFieldStyle.Render(content.String())
	}

	runes := []rune(text)
	if cursorPos < 0 {
		cursorPos = 0
	}
	if cursorPos > len(runes) {
		cursorPos = len(runes)
	}

	for i, r := range runes {
		switch {
		case focused && i == cursorPos:
			content.WriteString(inputCursorStyle.Render(string(r)))
		case focused && i >= selStart && i < selEnd:
			content.WriteString(inputSelectionStyle.Render(string(r)))
		default:
			content.WriteRune(r)
		}
	}
	if focused && cursorPos == len(runes) {
		content.WriteString(inputCursorStyle.Render(" "))
	}

	return inputFieldStyle.Render(content.String())
}

// RenderInputFieldWithLabel renders an input field with a label above it
func (ir *InputRenderer) RenderInputFieldWithLabel(
	label string,
	text string,
	cursorPos int,
	selStart, selEnd int,
	placeholder string,
	focused bool,
) string {
	var result strings.Builder

	result.WriteString(GetActiveHeaderStyle(focused).Render(label))
	result.WriteString("\n")
	result.WriteString(ir.RenderInputField(text, cursorPos, selStart, selEnd, placeholder, focused))

	return result.String()
}
