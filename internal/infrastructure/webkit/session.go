package webkit

import (
	"context"
	"errors"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/infrastructure/cookiejar"
	"github.com/bnema/webshell/internal/logging"
	"github.com/jwijenbergh/puregotk/v4/gio"
)

var _ port.SessionStore = (*SessionStore)(nil)

// SessionStore exposes the persistent network session's cookies.
type SessionStore struct {
	wkCtx     *WebKitContext
	reader    *cookiejar.Reader
	userAgent func() string

	callbacks []interface{}
}

// NewSessionStore creates a store over wkCtx. userAgent reports what the
// view sends and may be nil until the view exists.
func NewSessionStore(wkCtx *WebKitContext, userAgent func() string) *SessionStore {
	return &SessionStore{
		wkCtx:     wkCtx,
		reader:    cookiejar.NewReader(wkCtx.CookiesPath()),
		userAgent: userAgent,
	}
}

// SetUserAgentSource replaces the user agent source.
func (s *SessionStore) SetUserAgentSource(fn func() string) {
	s.userAgent = fn
}

// ClearCookies asks the website data manager to drop every cookie. The
// clear completes on the main loop, so the call returns without waiting.
// Must be called on the main thread.
func (s *SessionStore) ClearCookies(ctx context.Context) error {
	log := logging.FromContext(ctx)

	session := s.wkCtx.NetworkSession()
	if session == nil {
		return errors.New("network session not initialized")
	}
	dataManager := session.GetWebsiteDataManager()
	if dataManager == nil {
		return errors.New("website data manager unavailable")
	}

	var cb gio.AsyncReadyCallback
	cb = func(_ uintptr, resPtr uintptr, _ uintptr) {
		if resPtr == 0 {
			return
		}
		ok, err := dataManager.ClearFinish(&gio.AsyncResultBase{Ptr: resPtr})
		if err != nil || !ok {
			log.Warn().Err(err).Msg("failed to clear cookies")
			return
		}
		log.Info().Msg("cookies cleared")
	}
	s.callbacks = append(s.callbacks, &cb)

	// timespan 0 clears everything regardless of age
	dataManager.Clear(webkit.WebsiteDataCookiesValue, 0, nil, &cb, 0)
	return nil
}

// FlushCookies is a checkpoint only: WebKit writes its SQLite cookie
// store as cookies change.
func (s *SessionStore) FlushCookies(ctx context.Context) error {
	logging.FromContext(ctx).Debug().Str("path", s.wkCtx.CookiesPath()).Msg("cookie store is write-through")
	return nil
}

// CookieHeader reads the cookies WebKit persisted for rawURL.
func (s *SessionStore) CookieHeader(ctx context.Context, rawURL string) (string, error) {
	return s.reader.CookieHeader(ctx, rawURL)
}

// UserAgent returns the user agent the view sends.
func (s *SessionStore) UserAgent() string {
	if s.userAgent == nil {
		return ""
	}
	return s.userAgent()
}

// Close releases the cookie reader.
func (s *SessionStore) Close() error {
	return s.reader.Close()
}
