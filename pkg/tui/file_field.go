package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/cisan/caripiutang/pkg/matcher"
)

// FileField takes the path of the workbook to process. The file counts as
// attached only when it passes the service's upload checks.
type FileField struct {
	input textinput.Model
	size  int64
	err   error
}

func NewFileField() *FileField {
	ti := textinput.New()
	ti.Placeholder = "path/ke/piutang.xlsx"
	ti.Prompt = ""
	ti.CharLimit = 4096
	return &FileField{input: ti}
}

// Path returns the trimmed path as typed.
func (f *FileField) Path() string { return strings.TrimSpace(f.input.Value()) }

// Attached reports whether a valid workbook is selected.
func (f *FileField) Attached() bool { return f.Path() != "" && f.err == nil }

// SetPath replaces the path and revalidates it.
func (f *FileField) SetPath(path string) {
	f.input.SetValue(path)
	f.input.CursorEnd()
	f.validate()
}

// Clear detaches the file.
func (f *FileField) Clear() {
	f.input.Reset()
	f.size = 0
	f.err = nil
}

func (f *FileField) Focus() tea.Cmd { return f.input.Focus() }
func (f *FileField) Blur()          { f.input.Blur() }

func (f *FileField) Update(msg tea.Msg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.validate()
	}
	return cmd
}

func (f *FileField) validate() {
	f.size, f.err = 0, nil
	path := f.Path()
	if path == "" {
		return
	}
	f.size, f.err = matcher.ValidateWorkbook(path)
}

// Status describes the selected file or why it cannot be used.
func (f *FileField) Status() string {
	switch {
	case f.Path() == "":
		return ""
	case f.err != nil:
		return f.err.Error()
	default:
		return fmt.Sprintf("%s · %s", filepath.Base(f.Path()), humanize.IBytes(uint64(f.size)))
	}
}

func (f *FileField) View(width int) string {
	f.input.Width = width - 2
	return f.input.View()
}
