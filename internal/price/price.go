// Package price converts raw retailer price text into a canonical amount.
// Price formatting is untrusted external input, so malformed strings degrade
// to "absent" rather than producing an error.
package price

import (
	"strconv"
	"strings"
)

// notAvailable is the sentinel some retailers render instead of a price.
const notAvailable = "N/A"

// Parse extracts a canonical decimal amount from a raw price string.
// Every rune that is not a digit or a decimal point is stripped before
// parsing; ambiguous remainders (empty, multiple dots) report ok=false
// instead of guessing. It never panics.
func Parse(raw string) (amount float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, notAvailable) {
		return 0, false
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
