package mask

import "strings"

// Separator delimits segments in a raw value.
const Separator = ','

// separatorSpace is the separator as rendered between display segments.
const separatorSpace = ", "

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// FilterDigits removes every character that is not a digit.
func FilterDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, text)
}

// FilterDigitsAndSeparator removes every character that is neither a digit
// nor the segment separator.
func FilterDigitsAndSeparator(text string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) || r == Separator {
			return r
		}
		return -1
	}, text)
}

// CountDigits returns the number of digit characters in text.
func CountDigits(text string) int {
	n := 0
	for _, r := range text {
		if isDigit(r) {
			n++
		}
	}
	return n
}
