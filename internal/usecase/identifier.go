package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// IdentifierValidator is the pre-flight plausibility gate for product numbers.
// It holds a fixed table of brand-specific patterns; an identifier is plausible
// when it matches any of them. The table itself is configuration (see
// config.ValidationConfig), not a rule the aggregation core owns.
type IdentifierValidator struct {
	patterns map[string]*regexp.Regexp
}

// NewIdentifierValidator compiles the brand pattern table.
func NewIdentifierValidator(patterns map[string]string) (*IdentifierValidator, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("identifier validator requires at least one brand pattern")
	}

	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for brand, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for brand %q: %w", brand, err)
		}
		compiled[brand] = re
	}

	return &IdentifierValidator{patterns: compiled}, nil
}

// IsPlausible reports whether the identifier matches at least one brand pattern.
func (v *IdentifierValidator) IsPlausible(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	for _, re := range v.patterns {
		if re.MatchString(identifier) {
			return true
		}
	}
	return false
}

// MatchingBrands returns the brands whose pattern the identifier matches,
// sorted for deterministic output. Useful for brand backfill hints.
func (v *IdentifierValidator) MatchingBrands(identifier string) []string {
	identifier = strings.TrimSpace(identifier)
	var brands []string
	for brand, re := range v.patterns {
		if re.MatchString(identifier) {
			brands = append(brands, brand)
		}
	}
	sort.Strings(brands)
	return brands
}
