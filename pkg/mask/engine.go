package mask

import "strings"

// Key classifies the input that caused an edit.
type Key uint8

const (
	// KeyOther is any key the engine leaves to the surface's default edit.
	KeyOther Key = iota
	KeySeparator
	KeyBackspace
	KeyDelete
)

// Direction identifies which neighbour of the caret a deletion removes.
type Direction uint8

const (
	Backward Direction = iota
	Forward
)

// State is the edit state of one mask: the canonical raw value, the display
// string currently shown on the surface, and the caret/selection inside it.
//
// Anchor == Caret means there is no selection.
type State struct {
	Raw     string
	Display string
	Caret   int
	Anchor  int
}

// HasSelection reports whether the state carries a non-empty selection.
func (s State) HasSelection() bool { return s.Anchor != s.Caret }

// Selection returns the selection as an ordered [start, end) pair.
func (s State) Selection() (start, end int) {
	if s.Anchor < s.Caret {
		return s.Anchor, s.Caret
	}
	return s.Caret, s.Anchor
}

func (s State) clamped() State {
	n := len([]rune(s.Display))
	s.Caret = clampOffset(s.Caret, n)
	s.Anchor = clampOffset(s.Anchor, n)
	return s
}

// Outcome is the result of one key press.
//
// When Prevented is false the engine did not touch the state and the surface
// must run its default text edit, then report the result through Changed.
// When Prevented is true, State holds the new raw and display values and the
// caret to restore once the surface shows State.Display.
type Outcome struct {
	State     State
	Prevented bool
}

// Engine is the per-keystroke state machine of the mask.
type Engine struct {
	Formatter Formatter
}

// NewEngine returns an Engine formatting with f.
func NewEngine(f Formatter) Engine {
	return Engine{Formatter: f.normalized()}
}

// FromRaw renders raw with the caret at the end of the display string.
func (e Engine) FromRaw(raw string) State {
	raw = FilterDigitsAndSeparator(raw)
	display := e.Formatter.Format(raw)
	end := len([]rune(display))
	return State{Raw: raw, Display: display, Caret: end, Anchor: end}
}

// KeyDown classifies k against the characters adjacent to the caret and
// either performs a custom raw-value mutation or defers to the default edit.
// A non-empty selection always defers.
func (e Engine) KeyDown(s State, k Key) Outcome {
	s = s.clamped()
	if s.HasSelection() {
		return Outcome{State: s}
	}
	switch k {
	case KeySeparator:
		return Outcome{State: e.insertSeparator(s), Prevented: true}
	case KeyBackspace:
		return e.delete(s, Backward)
	case KeyDelete:
		return e.delete(s, Forward)
	}
	return Outcome{State: s}
}

// Changed reconciles text produced by a default edit: everything but digits
// and separators is stripped, the value is reformatted from scratch, and the
// caret is carried over by its digit offset.
func (e Engine) Changed(text string, caret int) State {
	digits := DigitsBeforeCaret(text, caret)
	return e.settle(FilterDigitsAndSeparator(text), digits)
}

func (e Engine) settle(raw string, digits int) State {
	display := e.Formatter.Format(raw)
	caret := caretForDigits(display, digits)
	return State{Raw: raw, Display: display, Caret: caret, Anchor: caret}
}

func (e Engine) insertSeparator(s State) State {
	digits := DigitsBeforeCaret(s.Display, s.Caret)
	raw := InsertSeparator(s.Raw, digits)
	display := e.Formatter.Format(raw)

	caret := CaretAfterNthDigit(display, digits)
	if idx := indexSeparatorFrom(display, caret); idx >= 0 {
		caret = SnapAwayFromSeparator(display, idx)
	}
	return State{Raw: raw, Display: display, Caret: caret, Anchor: caret}
}

func (e Engine) delete(s State, dir Direction) Outcome {
	rs := []rune(s.Display)
	pos := s.Caret
	if dir == Backward {
		pos--
	}
	if pos < 0 || pos >= len(rs) {
		return Outcome{State: s}
	}

	switch ch := rs[pos]; {
	case ch == Separator || ch == ' ':
		boundary := pos
		if ch == ' ' {
			boundary--
		}
		if boundary < 0 || rs[boundary] != Separator {
			return Outcome{State: s}
		}
		head := string(rs[:boundary])
		raw := RemoveSeparator(s.Raw, strings.Count(head, string(Separator)))
		return Outcome{State: e.settle(raw, CountDigits(head)), Prevented: true}

	case isDigit(ch) || ch == e.Formatter.normalized().Grouping:
		raw := RemoveDigit(s.Display, s.Caret, dir)
		digits := DigitsBeforeCaret(s.Display, s.Caret)
		if dir == Backward && digits > 0 {
			digits--
		}
		return Outcome{State: e.settle(raw, digits), Prevented: true}
	}
	return Outcome{State: s}
}

func indexSeparatorFrom(text string, from int) int {
	rs := []rune(text)
	for i := clampOffset(from, len(rs)); i < len(rs); i++ {
		if rs[i] == Separator {
			return i
		}
	}
	return -1
}

// InsertSeparator inserts a separator into raw after its digitsBefore-th
// digit. Insertion is skipped when a separator already follows that digit.
// A count past the last digit appends an open trailing separator.
func InsertSeparator(raw string, digitsBefore int) string {
	cleaned := FilterDigitsAndSeparator(raw)
	sep := string(Separator)
	if digitsBefore <= 0 {
		if strings.HasPrefix(cleaned, sep) {
			return cleaned
		}
		return sep + cleaned
	}

	count := 0
	for i := 0; i < len(cleaned); i++ {
		if !isDigit(rune(cleaned[i])) {
			continue
		}
		count++
		if count != digitsBefore {
			continue
		}
		if i+1 < len(cleaned) && cleaned[i+1] == Separator {
			return cleaned
		}
		return cleaned[:i+1] + sep + cleaned[i+1:]
	}

	if strings.HasSuffix(cleaned, sep) {
		return cleaned
	}
	return cleaned + sep
}

// RemoveSeparator removes the index-th (0-based) separator of raw, merging
// the segments on either side of it. Out-of-range indexes leave raw as is.
func RemoveSeparator(raw string, index int) string {
	if index < 0 {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	seen := 0
	for _, r := range raw {
		if r == Separator {
			seen++
			if seen-1 == index {
				continue
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RemoveDigit removes one digit adjacent to caret and returns the rebuilt raw
// value. The segment is the one containing the caret in display; within it,
// Backward removes the digit before the caret and Forward the digit after it.
// Emptied segments are kept so the slot stays editable.
func RemoveDigit(display string, caret int, dir Direction) string {
	rs := []rune(display)
	caret = clampOffset(caret, len(rs))
	before := string(rs[:caret])
	sep := string(Separator)

	tokens := strings.Split(display, sep)
	digits := make([]string, len(tokens))
	for i, tok := range tokens {
		digits[i] = FilterDigits(tok)
	}

	seg := strings.Count(before, sep)
	within := CountDigits(before[strings.LastIndex(before, sep)+1:])

	switch dir {
	case Backward:
		if within > 0 {
			d := digits[seg]
			digits[seg] = d[:within-1] + d[within:]
		} else if seg > 0 {
			prev := digits[seg-1]
			if prev != "" {
				digits[seg-1] = prev[:len(prev)-1]
			}
		}
	case Forward:
		d := digits[seg]
		if within < len(d) {
			digits[seg] = d[:within] + d[within+1:]
		} else if seg+1 < len(digits) {
			next := digits[seg+1]
			if next != "" {
				digits[seg+1] = next[1:]
			}
		}
	}

	rebuilt := strings.Join(digits, sep)
	if hasOpenSeparator(display) && !strings.HasSuffix(rebuilt, sep) {
		rebuilt += sep
	}
	return rebuilt
}
