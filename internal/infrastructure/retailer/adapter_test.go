package retailer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricescout/backend/internal/domain"
)

const fergusonProductHTML = `<!DOCTYPE html>
<html><body>
	<h1 class="product-title">Whitehaven 35-11/16" Cast Iron Kitchen Sink</h1>
	<div class="product-brand"><a href="/kohler">KOHLER</a></div>
	<div class="product-price"><span class="price">$1,234.56</span></div>
	<div class="availability-message">In Stock - Ships Today</div>
	<span class="product-sku">FERG-1021358</span>
	<span class="manufacturer-number">K-6489-0</span>
	<div class="product-description">Self-trimming apron-front sink.</div>
	<ul class="breadcrumbs"><li><a href="/">Home</a></li><li><a href="/kitchen">Kitchen</a></li><li>Sinks</li></ul>
	<div id="specifications"><table>
		<tr><th>Material</th><td>Cast Iron</td></tr>
		<tr><th>Finish</th><td>White</td></tr>
	</table></div>
</body></html>`

const fergusonSearchHTML = `<!DOCTYPE html>
<html><body>
	<h1 class="product-title">Found Via Search</h1>
	<div class="product-price"><span class="price">N/A</span></div>
</body></html>`

func TestAdapterSearch_DirectPhase(t *testing.T) {
	var searchHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/product/K-6489-0":
			w.Write([]byte(fergusonProductHTML))
		default:
			searchHits++
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-6489-0", "Kohler")

	require.NoError(t, err)
	require.NotNil(t, frag)
	assert.Equal(t, 0, searchHits, "direct hit must not trigger the fallback phase")

	assert.Equal(t, `Whitehaven 35-11/16" Cast Iron Kitchen Sink`, frag.ProductName)
	assert.Equal(t, "KOHLER", frag.Brand)
	assert.Equal(t, "Self-trimming apron-front sink.", frag.Description)
	assert.Equal(t, "Kitchen", frag.Category)
	assert.Equal(t, map[string]string{"Material": "Cast Iron", "Finish": "White"}, frag.Specifications)

	require.NotNil(t, frag.Offer)
	assert.Equal(t, "$1,234.56", frag.Offer.RawPrice)
	require.NotNil(t, frag.Offer.Price)
	assert.Equal(t, 1234.56, *frag.Offer.Price)
	assert.True(t, frag.Offer.InStock)
	assert.Equal(t, "FERG-1021358", frag.Offer.SKU)
	assert.Equal(t, "K-6489-0", frag.Offer.ModelNumber)
	assert.Contains(t, frag.Offer.SourceURL, "/product/K-6489-0")
}

func TestAdapterSearch_FallbackPhase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/product/K-0000-X" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Search URL carries the brand hint.
		assert.Contains(t, r.URL.Path, "Kohler")
		w.Write([]byte(fergusonSearchHTML))
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-0000-X", "Kohler")

	require.NoError(t, err)
	require.NotNil(t, frag)
	assert.Equal(t, "Found Via Search", frag.ProductName)

	// Price element found but unparsable: raw text retained, amount absent.
	require.NotNil(t, frag.Offer)
	assert.Equal(t, "N/A", frag.Offer.RawPrice)
	assert.Nil(t, frag.Offer.Price)
	assert.False(t, frag.Offer.InStock, "no explicit indicator means not in stock")
}

func TestAdapterSearch_BothPhasesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-9999-Z", "")

	assert.Nil(t, frag)
	require.Error(t, err)

	var sourceErr *domain.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, SourceFerguson, sourceErr.Source)
	assert.ErrorIs(t, err, domain.ErrNoProductFound)
}

func TestAdapterSearch_PageWithoutProductDataFallsThrough(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		// A 200 page with neither a product name nor a price element.
		w.Write([]byte(`<html><body><p>Did you mean something else?</p></body></html>`))
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-1111-0", "")

	assert.Nil(t, frag)
	assert.Error(t, err)
	assert.Len(t, paths, 2, "unusable direct page must still attempt the search phase")
}

func TestAdapterSearch_StructuredDataFillsGapsOnly(t *testing.T) {
	page := `<!DOCTYPE html><html><body>
		<h1 class="product-title">Visible Markup Name</h1>
		<script type="application/ld+json">
		{
			"@type": "Product",
			"name": "Structured Name",
			"brand": "KOHLER",
			"sku": "LD-SKU",
			"offers": {"price": "99.95", "availability": "http://schema.org/InStock"}
		}
		</script>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-6489-0", "")

	require.NoError(t, err)
	require.NotNil(t, frag)

	// Visible markup wins; structured data only fills what markup lacked.
	assert.Equal(t, "Visible Markup Name", frag.ProductName)
	assert.Equal(t, "KOHLER", frag.Brand)
	require.NotNil(t, frag.Offer)
	assert.Equal(t, "LD-SKU", frag.Offer.SKU)
	assert.Equal(t, "99.95", frag.Offer.RawPrice)
	require.NotNil(t, frag.Offer.Price)
	assert.Equal(t, 99.95, *frag.Offer.Price)
	assert.True(t, frag.Offer.InStock)
}

func TestAdapterSearch_MarkupStockBeatsStructuredData(t *testing.T) {
	// The visible page says out of stock while the (often stale) JSON-LD
	// block claims availability. The explicit markup answer must stand.
	page := `<!DOCTYPE html><html><body>
		<h1 class="product-title">Whitehaven Sink</h1>
		<div class="availability-message">Out of Stock</div>
		<script type="application/ld+json">
		{
			"@type": "Product",
			"name": "Whitehaven Sink",
			"offers": {"price": "599.00", "availability": "https://schema.org/InStock"}
		}
		</script>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	adapter := NewFerguson(testFetcher(), server.URL, nil)
	frag, err := adapter.Search(context.Background(), "K-6489-0", "")

	require.NoError(t, err)
	require.NotNil(t, frag)
	require.NotNil(t, frag.Offer)
	assert.False(t, frag.Offer.InStock, "explicit out-of-stock markup wins over structured data")
	assert.Equal(t, "599.00", frag.Offer.RawPrice, "price gap-fill still applies")
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, "K-6489-0", searchTerms("", "K-6489-0"))
	assert.Equal(t, "Kohler K-6489-0", searchTerms("Kohler", "K-6489-0"))
}

func TestAdapterNames(t *testing.T) {
	f := testFetcher()
	assert.Equal(t, "ferguson", NewFerguson(f, "https://x", nil).Name())
	assert.Equal(t, "homedepot", NewHomeDepot(f, "https://x", nil).Name())
	assert.Equal(t, "lowes", NewLowes(f, "https://x", nil).Name())
	assert.Equal(t, "supplycom", NewSupply(f, "https://x", nil).Name())
	assert.Equal(t, "buildcom", NewBuild(f, "https://x", nil).Name())
}
