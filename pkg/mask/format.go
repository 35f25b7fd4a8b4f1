package mask

import (
	"strings"
	"unicode"
)

// DefaultGrouping is the thousands mark of the id-ID convention.
const DefaultGrouping = '.'

// Formatter renders raw values as grouped display strings.
//
// The zero value groups with DefaultGrouping.
type Formatter struct {
	Grouping rune
}

// DefaultFormatter groups with '.'.
var DefaultFormatter = Formatter{Grouping: DefaultGrouping}

// NewFormatter returns a Formatter for the given grouping mark. Marks that
// would be confused with segment content (digits, the separator, whitespace)
// fall back to DefaultGrouping.
func NewFormatter(grouping rune) Formatter {
	return Formatter{Grouping: grouping}.normalized()
}

func (f Formatter) normalized() Formatter {
	g := f.Grouping
	if g == 0 || isDigit(g) || g == Separator || unicode.IsSpace(g) {
		g = DefaultGrouping
	}
	return Formatter{Grouping: g}
}

// FormatDigits groups the digits of text in clusters of three from the right.
// Non-digit characters are dropped; an input without digits formats to "".
func (f Formatter) FormatDigits(text string) string {
	digits := FilterDigits(text)
	if digits == "" {
		return ""
	}
	g := f.normalized().Grouping

	var sb strings.Builder
	sb.Grow(len(digits) + len(digits)/3)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteRune(g)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Format turns a raw value into its display string: every segment grouped,
// segments joined by ", ", and a trailing ", " when the raw value ends with
// an open separator.
func (f Formatter) Format(raw string) string {
	trailingOpen := hasOpenSeparator(raw)

	parts := strings.Split(raw, string(Separator))
	formatted := make([]string, len(parts))
	for i, part := range parts {
		formatted[i] = f.FormatDigits(part)
	}

	out := strings.Join(formatted, separatorSpace)
	if trailingOpen {
		switch {
		case out == "":
			out = separatorSpace
		case !strings.HasSuffix(out, separatorSpace):
			out += separatorSpace
		}
	}
	return strings.TrimLeftFunc(out, unicode.IsSpace)
}

// FormatDigits groups text with DefaultFormatter.
func FormatDigits(text string) string { return DefaultFormatter.FormatDigits(text) }

// Format renders raw with DefaultFormatter.
func Format(raw string) string { return DefaultFormatter.Format(raw) }

// hasOpenSeparator reports whether text ends with a separator, ignoring
// trailing whitespace.
func hasOpenSeparator(text string) bool {
	return strings.HasSuffix(strings.TrimRightFunc(text, unicode.IsSpace), string(Separator))
}
