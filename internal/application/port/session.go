package port

import "context"

// SessionStore is the browser session's cookie store.
type SessionStore interface {
	// ClearCookies removes every cookie of the session.
	ClearCookies(ctx context.Context) error
	// FlushCookies forces pending cookie changes to persistent storage.
	FlushCookies(ctx context.Context) error
	// CookieHeader returns the Cookie header value the session would send
	// to rawURL, or "".
	CookieHeader(ctx context.Context, rawURL string) (string, error)
	// UserAgent returns the user agent the render host sends.
	UserAgent() string
}

// AppLifecycle terminates the foreground surface.
type AppLifecycle interface {
	Quit()
}
