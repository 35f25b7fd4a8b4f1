// Package surface is the single-line text surface an input mask renders
// into: a rune buffer with a caret, an optional selection anchor and a
// version counter. It implements the default platform edits the mask
// engine defers to.
package surface

// Line is the editable single-line document.
type Line struct {
	text    []rune
	caret   int
	anchor  int
	version uint64

	lastChange    Change
	hasLastChange bool
}

// Change describes the last effective edit.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	TextBefore    string
	TextAfter     string
	CaretBefore   int
	CaretAfter    int
}

// New returns a line holding text with the caret at its end.
func New(text string) *Line {
	rs := []rune(text)
	return &Line{text: rs, caret: len(rs), anchor: len(rs)}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

func (l *Line) Text() string    { return string(l.text) }
func (l *Line) Len() int        { return len(l.text) }
func (l *Line) Caret() int      { return l.caret }
func (l *Line) Anchor() int     { return l.anchor }
func (l *Line) Version() uint64 { return l.version }

// Selection returns the selected range [start, end) and whether it is
// non-empty.
func (l *Line) Selection() (start, end int, ok bool) {
	start, end = l.anchor, l.caret
	if start > end {
		start, end = end, start
	}
	return start, end, start != end
}

// LastChange returns the most recent effective edit.
func (l *Line) LastChange() (Change, bool) {
	return l.lastChange, l.hasLastChange
}

// SetText replaces the whole text without recording an edit. The caret is
// clamped into the new text and the selection is cleared.
func (l *Line) SetText(text string) {
	next := []rune(text)
	if string(next) == string(l.text) {
		return
	}
	l.text = next
	l.caret = clamp(l.caret, len(next))
	l.anchor = l.caret
	l.version++
}

// SetCaret moves the caret and clears the selection.
func (l *Line) SetCaret(offset int) {
	offset = clamp(offset, len(l.text))
	if offset == l.caret && l.anchor == l.caret {
		return
	}
	l.caret = offset
	l.anchor = offset
	l.version++
}

// SetSelection selects [anchor, caret) with the caret at the second offset.
func (l *Line) SetSelection(anchor, caret int) {
	l.anchor = clamp(anchor, len(l.text))
	l.caret = clamp(caret, len(l.text))
	l.version++
}

// SelectAll selects the whole text.
func (l *Line) SelectAll() { l.SetSelection(0, len(l.text)) }

// InsertText inserts s at the caret, or replaces the active selection.
func (l *Line) InsertText(s string) {
	start, end, ok := l.Selection()
	if !ok {
		start, end = l.caret, l.caret
	}
	if s == "" && start == end {
		return
	}
	ins := []rune(s)
	l.replace(start, end, ins, start+len(ins))
}

// DeleteBackward applies backspace semantics.
func (l *Line) DeleteBackward() {
	if start, end, ok := l.Selection(); ok {
		l.replace(start, end, nil, start)
		return
	}
	if l.caret == 0 {
		return
	}
	l.replace(l.caret-1, l.caret, nil, l.caret-1)
}

// DeleteForward applies delete-key semantics.
func (l *Line) DeleteForward() {
	if start, end, ok := l.Selection(); ok {
		l.replace(start, end, nil, start)
		return
	}
	if l.caret == len(l.text) {
		return
	}
	l.replace(l.caret, l.caret+1, nil, l.caret)
}

// DeleteSelection removes the selected text, if any.
func (l *Line) DeleteSelection() {
	if start, end, ok := l.Selection(); ok {
		l.replace(start, end, nil, start)
	}
}

func (l *Line) replace(start, end int, ins []rune, caretAfter int) {
	before := string(l.text)
	caretBefore := l.caret
	versionBefore := l.version

	next := make([]rune, 0, len(l.text)-(end-start)+len(ins))
	next = append(next, l.text[:start]...)
	next = append(next, ins...)
	next = append(next, l.text[end:]...)

	l.text = next
	l.caret = clamp(caretAfter, len(next))
	l.anchor = l.caret
	l.version++

	l.lastChange = Change{
		VersionBefore: versionBefore,
		VersionAfter:  l.version,
		TextBefore:    before,
		TextAfter:     string(next),
		CaretBefore:   caretBefore,
		CaretAfter:    l.caret,
	}
	l.hasLastChange = true
}
