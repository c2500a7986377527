// Package retailer implements the per-source adapters: fetch a retailer page
// over plain HTTP, parse it with goquery, and emit a best-effort fragment.
// Each retailer is described by a profile (URL construction + selector
// fallback lists); the two-phase search and field extraction are shared.
package retailer

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pricescout/backend/internal/domain"
	"github.com/pricescout/backend/internal/price"
)

// selectorSet is the ordered fallback selector lists for one site's template.
// Empty lists simply mean the site never exposes that field.
type selectorSet struct {
	name        []string
	brand       []string
	rawPrice    []string
	stock       []string
	sku         []string
	model       []string
	description []string
	category    []string
	specs       []string
}

// profile describes one retailer: how to build its URLs and where its fields
// live. productURL may be nil for sites without canonical per-number pages;
// searchURL is the fallback and must be set.
type profile struct {
	name       string
	productURL func(baseURL, identifier string) string
	searchURL  func(baseURL, identifier, brand string) string
	selectors  selectorSet
}

// Adapter is a profile-driven SourceAdapter. It satisfies
// domain.SourceAdapter and owns a private transport session.
type Adapter struct {
	profile profile
	fetcher *Fetcher
	baseURL string
	logger  *zap.Logger
}

func newAdapter(p profile, fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		profile: p,
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(zap.String("source", p.name)),
	}
}

// Name implements domain.SourceAdapter.
func (a *Adapter) Name() string { return a.profile.name }

// Search implements the two-phase lookup: the canonical product URL first,
// then the query-style search page. The first phase that yields a usable
// fragment wins; if neither does, the whole source fails with a SourceError.
func (a *Adapter) Search(ctx context.Context, identifier, brand string) (*domain.Fragment, error) {
	if a.profile.productURL != nil {
		directURL := a.profile.productURL(a.baseURL, identifier)
		if frag := a.tryPage(ctx, directURL); frag != nil {
			return frag, nil
		}
	}

	searchURL := a.profile.searchURL(a.baseURL, identifier, brand)
	if frag := a.tryPage(ctx, searchURL); frag != nil {
		return frag, nil
	}

	return nil, domain.NewSourceError(a.profile.name, domain.ErrNoProductFound)
}

// tryPage fetches and parses one URL; any trouble yields nil so the caller
// can move on to the next phase.
func (a *Adapter) tryPage(ctx context.Context, pageURL string) *domain.Fragment {
	page, err := a.fetcher.Get(ctx, pageURL)
	if err != nil {
		a.logger.Debug("fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	if page.StatusCode != http.StatusOK {
		a.logger.Debug("non-ok page", zap.String("url", pageURL), zap.Int("status", page.StatusCode))
		return nil
	}

	frag := a.parse(page)
	if frag == nil {
		a.logger.Debug("page yielded no product data", zap.String("url", pageURL))
	}
	return frag
}

// parse extracts a fragment from a fetched page. Every field is independent:
// a missing field stays at its zero value and never fails the parse. The
// parse as a whole is unusable only when neither a product name nor a price
// element was found.
func (a *Adapter) parse(page *Page) *domain.Fragment {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		a.logger.Debug("unparsable html", zap.String("url", page.URL), zap.Error(err))
		return nil
	}

	sel := a.profile.selectors
	frag := &domain.Fragment{
		ProductName: firstText(doc, sel.name),
		Brand:       firstText(doc, sel.brand),
		Category:    firstText(doc, sel.category),
		Description: firstText(doc, sel.description),
	}

	inStock, stockFound := detectInStock(doc, sel.stock)
	offer := domain.SourceOffer{
		SourceURL:   page.URL,
		RawPrice:    firstText(doc, sel.rawPrice),
		InStock:     inStock,
		ModelNumber: firstText(doc, sel.model),
		SKU:         firstText(doc, sel.sku),
	}

	if specs := specRows(doc, sel.specs); len(specs) > 0 {
		frag.Specifications = specs
	}

	// The structured-data block is auxiliary: it fills gaps, never overrides
	// what the visible markup already said.
	if sd := extractStructuredProduct(doc); sd != nil {
		if frag.ProductName == "" {
			frag.ProductName = sd.Name
		}
		if frag.Brand == "" {
			frag.Brand = sd.Brand
		}
		if frag.Category == "" {
			frag.Category = sd.Category
		}
		if frag.Description == "" {
			frag.Description = sd.Description
		}
		if offer.RawPrice == "" {
			offer.RawPrice = sd.Price
		}
		if offer.SKU == "" {
			offer.SKU = sd.SKU
		}
		if offer.ModelNumber == "" {
			offer.ModelNumber = sd.MPN
		}
		// An explicit marker in either direction is already the answer; only
		// a silent page takes the structured-data availability.
		if !stockFound {
			offer.InStock = sd.InStock
		}
	}

	if frag.ProductName == "" && offer.RawPrice == "" {
		return nil
	}

	if amount, ok := price.Parse(offer.RawPrice); ok {
		offer.Price = &amount
	}
	frag.Offer = &offer

	return frag
}
