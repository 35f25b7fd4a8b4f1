package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_InsertText(t *testing.T) {
	l := New("1.000")
	l.SetCaret(1)
	l.InsertText("5")

	assert.Equal(t, "15.000", l.Text())
	assert.Equal(t, 2, l.Caret())

	ch, ok := l.LastChange()
	require.True(t, ok)
	assert.Equal(t, "1.000", ch.TextBefore)
	assert.Equal(t, "15.000", ch.TextAfter)
	assert.Equal(t, 1, ch.CaretBefore)
	assert.Equal(t, 2, ch.CaretAfter)
	assert.Equal(t, l.Version(), ch.VersionAfter)
}

func TestLine_ReplaceSelection(t *testing.T) {
	l := New("1.234")
	l.SetSelection(1, 4)
	l.InsertText("9")

	assert.Equal(t, "194", l.Text())
	assert.Equal(t, 2, l.Caret())
	_, _, ok := l.Selection()
	assert.False(t, ok)
}

func TestLine_Delete(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     int
		forward   bool
		wantText  string
		wantCaret int
	}{
		{name: "backspace", text: "123", caret: 2, wantText: "13", wantCaret: 1},
		{name: "backspace at start", text: "123", caret: 0, wantText: "123", wantCaret: 0},
		{name: "delete", text: "123", caret: 1, forward: true, wantText: "13", wantCaret: 1},
		{name: "delete at end", text: "123", caret: 3, forward: true, wantText: "123", wantCaret: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.text)
			l.SetCaret(tt.caret)
			if tt.forward {
				l.DeleteForward()
			} else {
				l.DeleteBackward()
			}
			assert.Equal(t, tt.wantText, l.Text())
			assert.Equal(t, tt.wantCaret, l.Caret())
		})
	}
}

func TestLine_DeleteSelection(t *testing.T) {
	l := New("1.000, 2.000")
	l.SelectAll()
	l.DeleteBackward()
	assert.Equal(t, "", l.Text())
	assert.Equal(t, 0, l.Caret())
}

func TestLine_SetTextClampsCaret(t *testing.T) {
	l := New("1.000.000")
	v := l.Version()
	l.SetText("1")
	assert.Equal(t, 1, l.Caret())
	assert.Greater(t, l.Version(), v)

	v = l.Version()
	l.SetText("1")
	assert.Equal(t, v, l.Version())
}

func TestLine_Move(t *testing.T) {
	l := New("12345")
	l.Move(DirHome, false)
	assert.Equal(t, 0, l.Caret())

	l.Move(DirLeft, false)
	assert.Equal(t, 0, l.Caret())

	l.Move(DirRight, true)
	l.Move(DirRight, true)
	start, end, ok := l.Selection()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	l.Move(DirLeft, false)
	assert.Equal(t, 0, l.Caret())
	_, _, ok = l.Selection()
	assert.False(t, ok)

	l.Move(DirEnd, false)
	assert.Equal(t, 5, l.Caret())
}
