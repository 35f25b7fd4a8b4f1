package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cisan/caripiutang/pkg/models"
)

const (
	targetsFieldID   = "targets"
	toleranceFieldID = "tolerance"

	targetsPlaceholder   = "Contoh: 1.000.000, 2.000.000"
	tolerancePlaceholder = "Default: 100"
)

// TargetInput is the multi-amount entry of the form. Both the grouped mask
// and the chip list implement it.
type TargetInput interface {
	// Update handles a message addressed to the field while it is focused,
	// or a caret restore and paste result at any time.
	Update(msg tea.Msg) tea.Cmd
	View(width int, focused bool) string

	// Value is the raw value: digits and separators as edited.
	Value() string
	// Normalized is the value sent to the service.
	Normalized() string
	HasPositive() bool
	Reset()
}

// NewTargetInput builds the variant selected by settings.
func NewTargetInput(form models.FormSettings, clip Clipboard) TargetInput {
	if form.TargetsInput == models.TargetsInputChips {
		return NewChipField(form.GroupingRune(), clip)
	}
	return NewTargetsField(form.GroupingRune(), clip)
}
