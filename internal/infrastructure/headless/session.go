package headless

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"

	"github.com/bnema/webshell/internal/application/port"
)

// Compile-time interface checks.
var (
	_ port.SessionStore = (*Session)(nil)
	_ http.CookieJar    = (*Session)(nil)
)

// DefaultUserAgent identifies the headless host.
const DefaultUserAgent = "webshell-headless/1.0"

// Session is an in-memory cookie store shared by page loads and direct
// transfers.
type Session struct {
	userAgent string

	mu  sync.Mutex
	jar *cookiejar.Jar
}

// NewSession creates an empty session. An empty userAgent uses
// DefaultUserAgent.
func NewSession(userAgent string) (*Session, error) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	return &Session{userAgent: userAgent, jar: jar}, nil
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}

// SetCookies implements http.CookieJar.
func (s *Session) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// ClearCookies drops every cookie.
func (s *Session) ClearCookies(context.Context) error {
	jar, err := newJar()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.jar = jar
	s.mu.Unlock()
	return nil
}

// FlushCookies is a no-op; the session is not persisted.
func (s *Session) FlushCookies(context.Context) error { return nil }

// CookieHeader returns the Cookie header for rawURL.
func (s *Session) CookieHeader(_ context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	cookies := s.Cookies(u)
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; "), nil
}

// UserAgent returns the user agent page loads send.
func (s *Session) UserAgent() string { return s.userAgent }
