package submission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "two amounts", raw: "1000000,2000000", want: []string{"1000000", "2000000"}},
		{name: "leading zeros stripped", raw: "000000,2000000", want: []string{"2000000"}},
		{name: "zero padded amount", raw: "0012,", want: []string{"12"}},
		{name: "empty segments", raw: ",,5,,", want: []string{"5"}},
		{name: "longer than int64", raw: "123456789012345678901234", want: []string{"123456789012345678901234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Targets(tt.raw))
		})
	}
}

func TestTotal(t *testing.T) {
	got := Total([]string{"1000000", "2500", "bogus"})
	assert.True(t, got.Equal(decimal.NewFromInt(1002500)))
	assert.True(t, Total(nil).IsZero())
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "", want: DefaultTolerance},
		{text: "abc", want: DefaultTolerance},
		{text: "0", want: 0},
		{text: "1.500", want: 1500},
		{text: "99999999999999999999999", want: DefaultTolerance},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tolerance(tt.text, DefaultTolerance), "text %q", tt.text)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ClampTolerance(-5))
	assert.Equal(t, 7, ClampTolerance(7))
	assert.Equal(t, 1, ClampMaxInvoices(0))
	assert.Equal(t, 20, ClampMaxInvoices(50))
	assert.Equal(t, 5, ClampMaxInvoices(5))
}
