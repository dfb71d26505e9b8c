package webkit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/rs/zerolog"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/infrastructure/cookiejar"
	"github.com/bnema/webshell/internal/logging"
)

var errEphemeralSession = errors.New("webkit session is ephemeral")

// WebKitContext owns the persistent NetworkSession every view shares.
// WebKit makes the first session created the default, so this must exist
// before NewWebView is called.
type WebKitContext struct {
	dataDir  string
	cacheDir string
	logger   zerolog.Logger

	mu      sync.RWMutex
	session *webkit.NetworkSession
	open    bool

	// retained so purego trampolines stay reachable
	callbacks []interface{}
}

// NewWebKitContext creates the persistent session described by opts:
// cookies in <DataDir>/cookies.db, credentials kept, TLS errors fatal.
func NewWebKitContext(ctx context.Context, opts port.WebKitContextOptions) (*WebKitContext, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &WebKitContext{
		dataDir:  opts.DataDir,
		cacheDir: opts.CacheDir,
		logger:   logging.FromContext(ctx).With().Str("component", "webkit-context").Logger(),
	}

	session, err := c.newPersistentSession()
	if err != nil {
		return nil, fmt.Errorf("create network session: %w", err)
	}
	if err := c.configureCookies(session, opts.CookiePolicy); err != nil {
		return nil, err
	}
	session.SetPersistentCredentialStorageEnabled(true)
	session.SetTlsErrorsPolicy(webkit.TlsErrorsPolicyFailValue)

	web := webkit.WebContextGetDefault()
	if web == nil {
		return nil, errors.New("webkit returned no default web context")
	}
	web.SetCacheModel(webkit.CacheModelWebBrowserValue)

	c.session = session
	c.open = true
	c.logger.Info().
		Str("data_dir", c.dataDir).
		Str("cache_dir", c.cacheDir).
		Msg("webkit session ready")
	return c, nil
}

func (c *WebKitContext) newPersistentSession() (*webkit.NetworkSession, error) {
	session := webkit.NewNetworkSession(&c.dataDir, &c.cacheDir)
	if session == nil {
		return nil, errors.New("webkit returned no session")
	}
	if session.IsEphemeral() {
		return nil, errEphemeralSession
	}
	data := session.GetWebsiteDataManager()
	if data == nil || data.IsEphemeral() {
		return nil, fmt.Errorf("website data manager: %w", errEphemeralSession)
	}
	return session, nil
}

func (c *WebKitContext) configureCookies(session *webkit.NetworkSession, policy port.WebKitCookiePolicy) error {
	cookies := session.GetCookieManager()
	if cookies == nil {
		return errors.New("webkit session has no cookie manager")
	}
	path := c.CookiesPath()
	accept, effective := mapCookiePolicy(policy)
	cookies.SetPersistentStorage(path, webkit.CookiePersistentStorageSqliteValue)
	cookies.SetAcceptPolicy(accept)

	c.logger.Info().
		Str("cookie_path", path).
		Str("cookie_policy", string(effective)).
		Msg("cookie storage configured")
	return nil
}

// mapCookiePolicy returns WebKit's policy and the one actually applied.
// Unknown values accept every cookie.
func mapCookiePolicy(policy port.WebKitCookiePolicy) (webkit.CookieAcceptPolicy, port.WebKitCookiePolicy) {
	switch policy {
	case port.WebKitCookiePolicyNever:
		return webkit.CookiePolicyAcceptNeverValue, policy
	case port.WebKitCookiePolicyNoThirdParty:
		return webkit.CookiePolicyAcceptNoThirdPartyValue, policy
	default:
		return webkit.CookiePolicyAcceptAlwaysValue, port.WebKitCookiePolicyAlways
	}
}

// NetworkSession returns the persistent session.
func (c *WebKitContext) NetworkSession() *webkit.NetworkSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// CookiesPath is the SQLite cookie store WebKit writes.
func (c *WebKitContext) CookiesPath() string {
	return filepath.Join(c.dataDir, cookiejar.FileName)
}

// IsInitialized reports whether the session is usable.
func (c *WebKitContext) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

// Close marks the context closed. WebKit frees the session itself.
func (c *WebKitContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// SetDownloadHandler routes every download the session starts to handler.
func (c *WebKitContext) SetDownloadHandler(ctx context.Context, handler *DownloadHandler) {
	session := c.NetworkSession()
	if session == nil || handler == nil {
		return
	}

	onStarted := func(_ webkit.NetworkSession, ptr uintptr) {
		if d := webkit.DownloadNewFromInternalPtr(ptr); d != nil {
			handler.HandleDownload(ctx, d)
		}
	}
	c.mu.Lock()
	c.callbacks = append(c.callbacks, onStarted)
	c.mu.Unlock()
	session.ConnectDownloadStarted(&onStarted)
}
