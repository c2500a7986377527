package retailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher() *Fetcher {
	return NewFetcher(FetcherConfig{
		RequestsPerSecond: 1000, // keep tests fast
		Timeout:           2 * time.Second,
	}, nil)
}

func TestFetcherGet_SetsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	page, err := testFetcher().Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetcherGet_ReturnsNonOKPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone"))
	}))
	defer server.Close()

	page, err := testFetcher().Get(context.Background(), server.URL)

	// 404 is a definitive answer, not a transport failure.
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.Equal(t, "gone", page.Body)
}

func TestFetcherGet_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	page, err := testFetcher().Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, 3, attempts)
}

func TestFetcherGet_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(FetcherConfig{RequestsPerSecond: 1000, MaxRetries: 2}, nil)
	page, err := fetcher.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, page.StatusCode)
	assert.Equal(t, 2, attempts)
}

func TestFetcherGet_InvalidURL(t *testing.T) {
	page, err := testFetcher().Get(context.Background(), "not a url")

	assert.Nil(t, page)
	assert.Error(t, err)
}

func TestFetcherGet_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	page, err := testFetcher().Get(ctx, server.URL)

	assert.Nil(t, page)
	assert.Error(t, err)
}
