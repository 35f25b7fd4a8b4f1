package mask

import "strings"

// Segments splits raw into its positional segments, each reduced to digits.
// Empty segments are kept.
func Segments(raw string) []string {
	parts := strings.Split(raw, string(Separator))
	for i, p := range parts {
		parts[i] = FilterDigits(p)
	}
	return parts
}

// Normalize prepares raw for submission: empty segments are dropped and the
// remaining digit strings are joined by ',' in order. Digit strings are kept
// verbatim, including leading zeros.
func Normalize(raw string) string {
	segs := Segments(raw)
	out := segs[:0]
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, string(Separator))
}

// HasPositive reports whether raw holds at least one segment with a numeric
// value greater than zero.
func HasPositive(raw string) bool {
	for _, s := range Segments(raw) {
		if strings.TrimLeft(s, "0") != "" {
			return true
		}
	}
	return false
}

// SubmitEnabled reports whether a form holding raw may be submitted.
func SubmitEnabled(raw string, fileAttached bool) bool {
	return fileAttached && HasPositive(raw)
}
