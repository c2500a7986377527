package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"plain decimal", "119.00", 119.00, true},
		{"dollar sign", "$249.99", 249.99, true},
		{"thousands separator", "$1,234.56", 1234.56, true},
		{"currency words", "Now: USD 89.50", 89.50, true},
		{"integer price", "$99", 99.0, true},
		{"leading whitespace", "  $12.34  ", 12.34, true},
		{"empty string", "", 0, false},
		{"not available sentinel", "N/A", 0, false},
		{"lowercase sentinel", "n/a", 0, false},
		{"symbols only", "$ ", 0, false},
		{"no digits", "Call for pricing", 0, false},
		{"multiple dots", "1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{"€", "…", "\x00\xff", "££££", ".", "..", "١٢٣"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in) })
	}
}
