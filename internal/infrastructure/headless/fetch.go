package headless

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnsupportedPage is returned for URIs the headless host cannot load.
var ErrUnsupportedPage = errors.New("unsupported page uri")

// PageFetcher loads page source for a URI.
type PageFetcher interface {
	Fetch(ctx context.Context, uri string) (string, error)
}

// Fetcher loads about:, file: and http(s) pages.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher with the given request timeout. A non-nil
// session supplies cookies and the user agent.
func NewFetcher(timeout time.Duration, session *Session) *Fetcher {
	client := resty.New().SetTimeout(timeout)
	if session != nil {
		client.SetCookieJar(session)
		client.SetHeader("User-Agent", session.UserAgent())
	}
	return &Fetcher{client: client}
}

// Fetch returns the page source of uri.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse page uri: %w", err)
	}
	switch u.Scheme {
	case "about":
		return "", nil
	case "file":
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return "", fmt.Errorf("read page: %w", err)
		}
		return string(data), nil
	case "http", "https":
		resp, err := f.client.R().SetContext(ctx).Get(uri)
		if err != nil {
			return "", fmt.Errorf("fetch page: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("fetch page: unexpected status %s", resp.Status())
		}
		return resp.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPage, uri)
	}
}
