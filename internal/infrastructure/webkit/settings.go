package webkit

import (
	"context"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/logging"
)

// SettingsManager applies config to WebKit Settings.
type SettingsManager struct {
	cfg *config.Config
	mu  sync.RWMutex
}

// NewSettingsManager creates a new SettingsManager with the given config.
func NewSettingsManager(ctx context.Context, cfg *config.Config) *SettingsManager {
	logging.FromContext(ctx).Debug().Msg("creating settings manager")
	return &SettingsManager{cfg: cfg}
}

func (sm *SettingsManager) applySettings(ctx context.Context, settings *webkit.Settings, cfg *config.Config) {
	applyJavaScriptSettings(settings)
	applyDebugSettings(settings, cfg)
	applyBrowsingSettings(settings)
	applyStorageSettings(settings)
	applyMediaSettings(settings)
	applyUserAgent(settings, cfg)

	logging.FromContext(ctx).Debug().
		Bool("developer_extras", cfg.WebKit.EnableDevTools).
		Str("user_agent", settings.GetUserAgent()).
		Msg("settings applied")
}

func applyJavaScriptSettings(settings *webkit.Settings) {
	settings.SetEnableJavascript(true)
	settings.SetEnableJavascriptMarkup(true)
	settings.SetJavascriptCanOpenWindowsAutomatically(false)
}

func applyDebugSettings(settings *webkit.Settings, cfg *config.Config) {
	settings.SetEnableDeveloperExtras(cfg.WebKit.EnableDevTools)
	settings.SetEnableWriteConsoleMessagesToStdout(cfg.WebKit.EnableDevTools)
}

func applyBrowsingSettings(settings *webkit.Settings) {
	settings.SetEnableSmoothScrolling(true)
	settings.SetEnablePageCache(true)
	settings.SetEnableFullscreen(true)
	settings.SetAllowFileAccessFromFileUrls(true)
}

func applyStorageSettings(settings *webkit.Settings) {
	settings.SetEnableHtml5LocalStorage(true)
	settings.SetEnableHtml5Database(true)
}

func applyMediaSettings(settings *webkit.Settings) {
	settings.SetEnableMedia(true)
	settings.SetMediaPlaybackRequiresUserGesture(true)
}

func applyUserAgent(settings *webkit.Settings, cfg *config.Config) {
	if cfg.WebKit.UserAgent != "" {
		settings.SetUserAgent(&cfg.WebKit.UserAgent)
	}
}

// UpdateFromConfig swaps the config used by the next ApplyToWebView.
func (sm *SettingsManager) UpdateFromConfig(ctx context.Context, cfg *config.Config) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg = cfg
	logging.FromContext(ctx).Debug().Msg("settings config updated")
}

// ApplyToWebView applies the current config to the view's own settings.
func (sm *SettingsManager) ApplyToWebView(ctx context.Context, wv *webkit.WebView) {
	if wv == nil {
		return
	}
	settings := wv.GetSettings()
	if settings == nil {
		logging.FromContext(ctx).Error().Msg("webview has no settings")
		return
	}

	sm.mu.RLock()
	cfg := sm.cfg
	sm.mu.RUnlock()
	sm.applySettings(ctx, settings, cfg)
}

// UserAgent returns the user agent the view sends.
func UserAgent(wv *webkit.WebView) string {
	if wv == nil {
		return ""
	}
	settings := wv.GetSettings()
	if settings == nil {
		return ""
	}
	return settings.GetUserAgent()
}
