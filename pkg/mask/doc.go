// Package mask implements the caret-stable, grouped multi-amount input mask.
//
// Three coordinate spaces are reconciled on every edit: the raw value (digits
// and ',' separators), the grouped display string derived from it, and the
// caret offset into the display string. Digits are never created or destroyed
// by formatting, so the number of digits before the caret is the coordinate
// carried across reformatting.
//
// Offsets are rune indexes. All functions are total: out-of-range offsets and
// counts are clamped, and characters that are neither digits nor separators
// are dropped.
package mask
