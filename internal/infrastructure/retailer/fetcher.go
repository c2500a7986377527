package retailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pricescout/backend/internal/domain"
)

// DefaultUserAgent is a realistic browser User-Agent; most retailers serve a
// degraded or blocked page to obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Page is one fetched retailer page: final URL, status, and body text.
type Page struct {
	URL        string
	StatusCode int
	Body       string
}

// FetcherConfig tunes one retailer's transport session.
type FetcherConfig struct {
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
}

// Fetcher issues GET requests for a single retailer. Each adapter owns its own
// Fetcher; nothing here is shared across sources. The limiter and retry policy
// are the transport-level politeness bound the aggregation core relies on.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
	logger     *zap.Logger
}

// NewFetcher creates a transport session with the given politeness settings.
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 3),
		userAgent:  userAgent,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Get fetches a URL and returns the page regardless of status code; callers
// decide whether a non-200 page is worth a fallback attempt. An error is
// returned only when no response could be obtained at all.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", domain.ErrFetchFailed, rawURL)
	}

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		page, err := f.doRequest(ctx, rawURL)
		if err != nil {
			lastErr = err
			f.logger.Debug("request failed",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if ctx.Err() != nil {
				return nil, lastErr
			}
			sleep(ctx, backoff(attempt))
			continue
		}

		// Transient upstream trouble is worth another attempt; everything
		// else (including 404) is a definitive answer for this URL.
		if page.StatusCode >= http.StatusInternalServerError || page.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("%w: status %d for %s", domain.ErrFetchFailed, page.StatusCode, rawURL)
			if attempt < f.maxRetries {
				f.logger.Debug("retrying after upstream error",
					zap.String("url", rawURL),
					zap.Int("status", page.StatusCode),
					zap.Int("attempt", attempt))
				sleep(ctx, backoff(attempt))
				continue
			}
			return page, nil
		}

		return page, nil
	}

	return nil, lastErr
}

func (f *Fetcher) doRequest(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Page{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
