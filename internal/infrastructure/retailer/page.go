package retailer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// firstText returns the first non-empty trimmed text matched by the selector
// fallback list. Retail page templates drift, so every field is looked up
// through an ordered list rather than a single selector.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// specRows collects label/value pairs from the first matching specification
// table. Supports th/td rows, two-cell td rows, and dt/dd definition lists.
// Rows missing either half are skipped.
func specRows(doc *goquery.Document, selectors []string) map[string]string {
	specs := make(map[string]string)

	for _, selector := range selectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		container.Find("tr").Each(func(_ int, row *goquery.Selection) {
			label := strings.TrimSpace(row.Find("th").First().Text())
			value := strings.TrimSpace(row.Find("td").First().Text())
			if label == "" {
				cells := row.Find("td")
				if cells.Length() >= 2 {
					label = strings.TrimSpace(cells.Eq(0).Text())
					value = strings.TrimSpace(cells.Eq(1).Text())
				}
			}
			if label != "" && value != "" {
				specs[label] = value
			}
		})

		container.Find("dt").Each(func(i int, dt *goquery.Selection) {
			label := strings.TrimSpace(dt.Text())
			value := strings.TrimSpace(dt.NextFiltered("dd").Text())
			if label != "" && value != "" {
				specs[label] = value
			}
		})

		if len(specs) > 0 {
			break
		}
	}

	return specs
}

// inStockMarkers are the phrases accepted as an explicit availability signal.
// Anything else (including silence) reports out of stock; availability is
// never inferred.
var inStockMarkers = []string{
	"in stock",
	"instock",
	"available",
	"ready to ship",
	"ships today",
}

// detectInStock reports availability only on an explicit, recognizable marker.
// found distinguishes a page that says "out of stock" from one that says
// nothing at all; only the latter may be filled from auxiliary sources.
func detectInStock(doc *goquery.Document, selectors []string) (inStock, found bool) {
	for _, selector := range selectors {
		text := strings.ToLower(strings.TrimSpace(doc.Find(selector).First().Text()))
		if text == "" {
			continue
		}
		if strings.Contains(text, "out of stock") || strings.Contains(text, "unavailable") {
			return false, true
		}
		for _, marker := range inStockMarkers {
			if strings.Contains(text, marker) {
				return true, true
			}
		}
	}
	return false, false
}

// structuredProduct is the subset of a schema.org/Product JSON-LD block the
// adapters care about. It is an auxiliary source only: values from it fill
// fields still absent after visible-markup extraction, never override them.
type structuredProduct struct {
	Name        string
	Brand       string
	SKU         string
	MPN         string
	Description string
	Category    string
	Price       string
	InStock     bool
}

type ldProduct struct {
	Type        jsonTypes       `json:"@type"`
	Graph       []ldProduct     `json:"@graph"`
	Name        string          `json:"name"`
	Brand       json.RawMessage `json:"brand"`
	SKU         string          `json:"sku"`
	MPN         string          `json:"mpn"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Offers      json.RawMessage `json:"offers"`
}

type ldOffer struct {
	Price        ldPrice `json:"price"`
	Availability string  `json:"availability"`
}

// ldPrice tolerates "price" being a JSON number or a string.
type ldPrice string

func (p *ldPrice) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*p = ldPrice(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*p = ldPrice(num.String())
		return nil
	}
	*p = ""
	return nil
}

type ldNamed struct {
	Name string `json:"name"`
}

// jsonTypes tolerates "@type" being either a string or an array of strings.
type jsonTypes []string

func (t *jsonTypes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = jsonTypes{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*t = jsonTypes(many)
		return nil
	}
	// Unexpected shape; treat as absent rather than failing the whole block.
	*t = nil
	return nil
}

func (t jsonTypes) contains(want string) bool {
	for _, v := range t {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// extractStructuredProduct scans ld+json script blocks for a Product node.
// Malformed blocks are skipped; pages embed plenty of them.
func extractStructuredProduct(doc *goquery.Document) *structuredProduct {
	var found *structuredProduct

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		for _, node := range decodeLDNodes(raw) {
			if product := productFromNode(node); product != nil {
				found = product
				return false
			}
		}
		return true
	})

	return found
}

func decodeLDNodes(raw string) []ldProduct {
	var single ldProduct
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if len(single.Graph) > 0 {
			return single.Graph
		}
		return []ldProduct{single}
	}

	var many []ldProduct
	if err := json.Unmarshal([]byte(raw), &many); err == nil {
		return many
	}
	return nil
}

func productFromNode(node ldProduct) *structuredProduct {
	if !node.Type.contains("Product") {
		return nil
	}

	product := &structuredProduct{
		Name:        strings.TrimSpace(node.Name),
		SKU:         strings.TrimSpace(node.SKU),
		MPN:         strings.TrimSpace(node.MPN),
		Description: strings.TrimSpace(node.Description),
		Category:    strings.TrimSpace(node.Category),
		Brand:       decodeNameOrString(node.Brand),
	}

	if offer := decodeFirstOffer(node.Offers); offer != nil {
		product.Price = string(offer.Price)
		product.InStock = strings.Contains(strings.ToLower(offer.Availability), "instock")
	}

	return product
}

// decodeNameOrString handles JSON-LD fields that are either a plain string or
// an object with a "name" property.
func decodeNameOrString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	var named ldNamed
	if err := json.Unmarshal(raw, &named); err == nil {
		return strings.TrimSpace(named.Name)
	}
	return ""
}

func decodeFirstOffer(raw json.RawMessage) *ldOffer {
	if len(raw) == 0 {
		return nil
	}
	// An offer with no price can still carry the availability signal, so a
	// successful object decode is kept as-is.
	var offer ldOffer
	if err := json.Unmarshal(raw, &offer); err == nil {
		return &offer
	}
	var offers []ldOffer
	if err := json.Unmarshal(raw, &offers); err == nil && len(offers) > 0 {
		return &offers[0]
	}
	return nil
}
