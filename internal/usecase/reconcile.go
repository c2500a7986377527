package usecase

import (
	"strings"

	"github.com/pricescout/backend/internal/domain"
)

// SourceOutcome is the recorded result of one adapter invocation: either a
// fragment or an error, never both. The orchestrator produces exactly one per
// registered adapter, in adapter priority order.
type SourceOutcome struct {
	Source   string
	Fragment *domain.Fragment
	Err      error
}

// Reconcile merges per-source outcomes into one AggregateResult.
//
// Scalar fields (product name, brand, category, description) are
// first-writer-wins in adapter priority order. The specifications map is
// last-writer-wins on key collisions, the inverse rule, kept deliberately:
// lower-priority sources supplement gaps and their table values have been
// observed to be the fresher ones. Don't unify the two rules without a design
// review.
func Reconcile(identifier, brand string, outcomes []SourceOutcome) *domain.AggregateResult {
	result := &domain.AggregateResult{
		ModelNumber:    identifier,
		Brand:          brand,
		Specifications: make(map[string]string),
		Offers:         make(map[string]domain.SourceOffer),
	}

	var failures []string
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures = append(failures, outcome.Err.Error())
			continue
		}
		if outcome.Fragment == nil {
			continue
		}
		mergeFragment(result, outcome.Source, outcome.Fragment)
	}

	if len(result.Offers) == 0 && len(failures) > 0 {
		result.Error = strings.Join(failures, "; ")
	}

	if len(result.Specifications) == 0 {
		result.Specifications = nil
	}

	return result
}

func mergeFragment(result *domain.AggregateResult, source string, frag *domain.Fragment) {
	if result.ProductName == "" {
		result.ProductName = frag.ProductName
	}
	if result.Brand == "" {
		result.Brand = frag.Brand
	}
	if result.Category == "" {
		result.Category = frag.Category
	}
	if result.Description == "" {
		result.Description = frag.Description
	}

	for key, value := range frag.Specifications {
		result.Specifications[key] = value
	}

	if frag.Offer != nil {
		result.Offers[source] = *frag.Offer
		result.Sources = append(result.Sources, source)
	}
}
