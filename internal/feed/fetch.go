package feed

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/csimons/hn/internal/logger"
	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves a feed document as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher performs a plain GET. It sets no timeout of its own; the
// transport's defaults apply.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{}, UserAgent: userAgent}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: url, Err: gofeed.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	logger.Debugf("fetched %s: %d bytes", url, len(body))
	return string(body), nil
}

// DetectType sniffs the document's format: "rss", "atom", "json" or
// "unknown type". Only rss documents carry <comments> links.
func DetectType(body string) string {
	return feedTypeName(gofeed.DetectFeedType(strings.NewReader(body)))
}

func feedTypeName(t gofeed.FeedType) string {
	switch t {
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown type"
	}
}
