package mask

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stateAt(raw string, caret int) State {
	return State{Raw: raw, Display: Format(raw), Caret: caret, Anchor: caret}
}

func TestEngine_KeyDown(t *testing.T) {
	e := NewEngine(DefaultFormatter)

	tests := []struct {
		name      string
		raw       string
		caret     int
		key       Key
		wantRaw   string
		wantShow  string
		wantCaret int
		prevented bool
	}{
		{
			name: "separator on empty input", raw: "", caret: 0, key: KeySeparator,
			wantRaw: ",", wantShow: ", ", wantCaret: 2, prevented: true,
		},
		{
			name: "backspace after the first grouping mark removes the leading digit",
			raw:  "1000000,2000000", caret: 2, key: KeyBackspace,
			wantRaw: "000000,2000000", wantShow: "000.000, 2.000.000", wantCaret: 0, prevented: true,
		},
		{
			name: "separator at the end opens a segment", raw: "1234", caret: 5, key: KeySeparator,
			wantRaw: "1234,", wantShow: "1.234, ", wantCaret: 7, prevented: true,
		},
		{
			name: "separator inside a segment splits it", raw: "1234", caret: 3, key: KeySeparator,
			wantRaw: "12,34", wantShow: "12, 34", wantCaret: 4, prevented: true,
		},
		{
			name: "separator before an existing separator jumps over it", raw: "1,2", caret: 1, key: KeySeparator,
			wantRaw: "1,2", wantShow: "1, 2", wantCaret: 3, prevented: true,
		},
		{
			name: "separator after a single digit", raw: "1", caret: 1, key: KeySeparator,
			wantRaw: "1,", wantShow: "1, ", wantCaret: 3, prevented: true,
		},
		{
			name: "separator after an open separator is ignored", raw: "1,", caret: 3, key: KeySeparator,
			wantRaw: "1,", wantShow: "1, ", wantCaret: 3, prevented: true,
		},
		{
			name: "backspace after separator space merges segments", raw: "12,34", caret: 4, key: KeyBackspace,
			wantRaw: "1234", wantShow: "1.234", wantCaret: 3, prevented: true,
		},
		{
			name: "delete on separator merges segments", raw: "12,34", caret: 2, key: KeyDelete,
			wantRaw: "1234", wantShow: "1.234", wantCaret: 3, prevented: true,
		},
		{
			name: "delete on separator space merges segments", raw: "12,34", caret: 3, key: KeyDelete,
			wantRaw: "1234", wantShow: "1.234", wantCaret: 3, prevented: true,
		},
		{
			name: "backspace empties a middle segment", raw: "1,2,3", caret: 4, key: KeyBackspace,
			wantRaw: "1,,3", wantShow: "1, , 3", wantCaret: 3, prevented: true,
		},
		{
			name: "backspace removes an empty segment", raw: "1,,3", caret: 5, key: KeyBackspace,
			wantRaw: "1,3", wantShow: "1, 3", wantCaret: 3, prevented: true,
		},
		{
			name: "backspace removes a leading separator", raw: ",5", caret: 2, key: KeyBackspace,
			wantRaw: "5", wantShow: "5", wantCaret: 0, prevented: true,
		},
		{
			name: "delete on grouping mark removes the next digit", raw: "1234", caret: 1, key: KeyDelete,
			wantRaw: "134", wantShow: "134", wantCaret: 1, prevented: true,
		},
		{
			name: "backspace closes an open separator", raw: "1,", caret: 3, key: KeyBackspace,
			wantRaw: "1", wantShow: "1", wantCaret: 1, prevented: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.KeyDown(stateAt(tt.raw, tt.caret), tt.key)
			assert.Equal(t, tt.prevented, out.Prevented)
			assert.Equal(t, tt.wantRaw, out.State.Raw)
			assert.Equal(t, tt.wantShow, out.State.Display)
			assert.Equal(t, tt.wantCaret, out.State.Caret)
			assert.False(t, out.State.HasSelection())
		})
	}
}

func TestEngine_KeyDown_Defers(t *testing.T) {
	e := NewEngine(DefaultFormatter)

	tests := []struct {
		name  string
		state State
		key   Key
	}{
		{name: "backspace at start", state: stateAt("1234", 0), key: KeyBackspace},
		{name: "delete at end", state: stateAt("1234", 5), key: KeyDelete},
		{name: "other keys", state: stateAt("1234", 2), key: KeyOther},
		{
			name:  "selection",
			state: State{Raw: "1234", Display: "1.234", Caret: 4, Anchor: 1},
			key:   KeyBackspace,
		},
		{
			name:  "selection with separator key",
			state: State{Raw: "1234", Display: "1.234", Caret: 0, Anchor: 5},
			key:   KeySeparator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.KeyDown(tt.state, tt.key)
			assert.False(t, out.Prevented)
			assert.Equal(t, tt.state, out.State)
		})
	}
}

func TestEngine_Changed(t *testing.T) {
	e := NewEngine(DefaultFormatter)

	tests := []struct {
		name      string
		text      string
		caret     int
		wantRaw   string
		wantShow  string
		wantCaret int
	}{
		{name: "typed digit regroups", text: "1.0005", caret: 6, wantRaw: "10005", wantShow: "10.005", wantCaret: 6},
		{name: "caret left on separator snaps forward", text: "5, ", caret: 1, wantRaw: "5,", wantShow: "5, ", wantCaret: 3},
		{name: "letters are stripped", text: "1.2a34", caret: 4, wantRaw: "1234", wantShow: "1.234", wantCaret: 3},
		{name: "cleared", text: "", caret: 0, wantRaw: "", wantShow: "", wantCaret: 0},
		{name: "pasted list", text: "1000000,2000000", caret: 15, wantRaw: "1000000,2000000", wantShow: "1.000.000, 2.000.000", wantCaret: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Changed(tt.text, tt.caret)
			assert.Equal(t, tt.wantRaw, s.Raw)
			assert.Equal(t, tt.wantShow, s.Display)
			assert.Equal(t, tt.wantCaret, s.Caret)
			assert.Equal(t, s.Caret, s.Anchor)
		})
	}
}

func TestEngine_FromRaw(t *testing.T) {
	s := NewEngine(DefaultFormatter).FromRaw("1000000,2000000")
	assert.Equal(t, "1.000.000, 2.000.000", s.Display)
	assert.Equal(t, 20, s.Caret)
	assert.Equal(t, 20, s.Anchor)
}

func TestEngine_Invariants(t *testing.T) {
	e := NewEngine(DefaultFormatter)
	r := rand.New(rand.NewSource(3))
	keys := []Key{KeySeparator, KeyBackspace, KeyDelete}

	for i := 0; i < 3000; i++ {
		raw := FilterDigitsAndSeparator(randomRaw(r))
		display := Format(raw)
		caret := r.Intn(len(display) + 1)
		out := e.KeyDown(stateAt(raw, caret), keys[r.Intn(len(keys))])

		assert.Equal(t, Format(out.State.Raw), out.State.Display, "raw %q caret %d", raw, caret)
		assert.GreaterOrEqual(t, out.State.Caret, 0)
		assert.LessOrEqual(t, out.State.Caret, len([]rune(out.State.Display)))
	}
}

func TestInsertSeparator(t *testing.T) {
	tests := []struct {
		raw    string
		digits int
		want   string
	}{
		{raw: "", digits: 0, want: ","},
		{raw: ",5", digits: 0, want: ",5"},
		{raw: "1234", digits: 2, want: "12,34"},
		{raw: "12,34", digits: 2, want: "12,34"},
		{raw: "1234", digits: 9, want: "1234,"},
		{raw: "1234,", digits: 4, want: "1234,"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InsertSeparator(tt.raw, tt.digits), "InsertSeparator(%q, %d)", tt.raw, tt.digits)
	}
}

func TestRemoveSeparator(t *testing.T) {
	assert.Equal(t, "12,34", RemoveSeparator("1,2,34", 0))
	assert.Equal(t, "1,234", RemoveSeparator("1,2,34", 1))
	assert.Equal(t, "1,2,34", RemoveSeparator("1,2,34", 2))
	assert.Equal(t, "1,2,34", RemoveSeparator("1,2,34", -1))
}

func TestRemoveDigit(t *testing.T) {
	tests := []struct {
		name    string
		display string
		caret   int
		dir     Direction
		want    string
	}{
		{name: "backward inside segment", display: "1.234", caret: 3, dir: Backward, want: "134"},
		{name: "forward inside segment", display: "1.234", caret: 3, dir: Forward, want: "124"},
		{name: "backward at segment start reaches previous", display: "12, 34", caret: 4, dir: Backward, want: "1,34"},
		{name: "forward at segment end reaches next", display: "12, 34", caret: 2, dir: Forward, want: "12,4"},
		{name: "open separator kept", display: "12, ", caret: 2, dir: Backward, want: "1,"},
		{name: "emptied segment kept", display: "1, 2, 3", caret: 4, dir: Backward, want: "1,,3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveDigit(tt.display, tt.caret, tt.dir))
		})
	}
}
