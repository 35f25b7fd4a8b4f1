package mask

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// DigitsBeforeCaret counts the digits in text[0:caret]. The caret is a rune
// offset and is clamped into [0, len(text)].
func DigitsBeforeCaret(text string, caret int) int {
	rs := []rune(text)
	caret = clampOffset(caret, len(rs))
	n := 0
	for _, r := range rs[:caret] {
		if isDigit(r) {
			n++
		}
	}
	return n
}

// CaretAfterNthDigit returns the offset immediately after the n-th digit of
// text. It returns 0 for n <= 0 and len(text) when text has fewer than n
// digits.
func CaretAfterNthDigit(text string, n int) int {
	rs := []rune(text)
	if n <= 0 {
		return 0
	}
	count := 0
	for i, r := range rs {
		if !isDigit(r) {
			continue
		}
		count++
		if count == n {
			return i + 1
		}
	}
	return len(rs)
}

// SnapAwayFromSeparator moves an offset sitting on a separator past the
// separator and its following space, clamped to the end of text.
func SnapAwayFromSeparator(text string, offset int) int {
	rs := []rune(text)
	offset = clampOffset(offset, len(rs))
	if offset < len(rs) && rs[offset] == Separator {
		return clampOffset(offset+len(separatorSpace), len(rs))
	}
	return offset
}

// caretForDigits maps a digit count back into text and applies the snap rule.
func caretForDigits(text string, digits int) int {
	return SnapAwayFromSeparator(text, CaretAfterNthDigit(text, digits))
}
