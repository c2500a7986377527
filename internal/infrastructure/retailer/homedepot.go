package retailer

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// SourceHomeDepot is the second-priority source.
const SourceHomeDepot = "homedepot"

// NewHomeDepot builds the Home Depot adapter. Home Depot has no canonical
// URL derivable from a manufacturer number alone, so only the search phase
// applies.
func NewHomeDepot(fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	return newAdapter(profile{
		name: SourceHomeDepot,
		searchURL: func(base, identifier, brand string) string {
			return fmt.Sprintf("%s/s/%s", base, url.PathEscape(searchTerms(brand, identifier)))
		},
		selectors: selectorSet{
			name: []string{
				"h1.product-details__title",
				"h1[data-component='ProductTitle']",
				".product-title h1",
			},
			brand: []string{
				".product-details__brand a",
				"[data-component='BrandLink']",
			},
			rawPrice: []string{
				".price-format__main-price",
				"[data-testid='price']",
				".price-detailed__wrapper .price",
			},
			stock: []string{
				".fulfillment-tile__availability",
				"[data-testid='fulfillment-availability']",
			},
			sku: []string{
				".product-info-bar__detail--sku",
				"[data-testid='product-sku']",
			},
			model: []string{
				".product-info-bar__detail--model",
				"[data-testid='product-model']",
			},
			description: []string{
				".product-details__description",
				"#product-overview .desc",
			},
			category: []string{
				"nav.breadcrumbs li:nth-last-child(2) a",
			},
			specs: []string{
				"#specifications table",
				".specs__table",
			},
		},
	}, fetcher, baseURL, logger)
}
