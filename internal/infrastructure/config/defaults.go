package config

// Default configuration constants
const (
	defaultStartURL    = "http://localhost:3000/"
	defaultTitle       = "webshell"
	defaultVersionCode = 1
	defaultColorScheme = "system"

	// Logging defaults
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3

	// Bridge defaults
	defaultHandlerName   = "webshell"
	defaultDelayedWorkMs = 3000

	// Scanner defaults
	defaultScanInterface = "com.example.pda"
	defaultScanMember    = "ACTION"
	defaultScanDataKey   = "com.symbol.datawedge.data_string"

	// Toasts
	defaultToastDurationMs = 2000
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for webshell.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			StartURL:    defaultStartURL,
			VersionCode: defaultVersionCode,
			Title:       defaultTitle,
			ColorScheme: defaultColorScheme,
		},
		Logging: LoggingConfig{
			Level:          "info",
			Format:         "console",
			EnableFileLog:  false,
			LogDir:         getDefaultLogDir(),
			MaxSizeMB:      defaultLogMaxSizeMB,
			MaxBackups:     defaultLogMaxBackups,
			CaptureGTKLogs: true,
		},
		Bridge: BridgeConfig{
			HandlerName:   defaultHandlerName,
			DelayedWorkMs: defaultDelayedWorkMs,
		},
		Scanner: ScannerConfig{
			Enabled:   true,
			Interface: defaultScanInterface,
			Member:    defaultScanMember,
			DataKey:   defaultScanDataKey,
		},
		WebKit: WebKitConfig{
			CookiePolicy: CookiePolicyAlways,
		},
		Notifications: NotificationsConfig{
			Enabled:         true,
			ToastDurationMs: defaultToastDurationMs,
		},
	}
}
