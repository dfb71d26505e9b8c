package config

// Config represents the complete configuration for webshell.
type Config struct {
	App           AppConfig           `mapstructure:"app" yaml:"app" toml:"app"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Downloads     DownloadsConfig     `mapstructure:"downloads" yaml:"downloads" toml:"downloads"`
	Bridge        BridgeConfig        `mapstructure:"bridge" yaml:"bridge" toml:"bridge"`
	Scanner       ScannerConfig       `mapstructure:"scanner" yaml:"scanner" toml:"scanner"`
	Database      DatabaseConfig      `mapstructure:"database" yaml:"database" toml:"database"`
	WebKit        WebKitConfig        `mapstructure:"webkit" yaml:"webkit" toml:"webkit"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications" toml:"notifications"`
}

// AppConfig describes the hosted web application.
type AppConfig struct {
	// StartURL is loaded into the main view at startup.
	StartURL string `mapstructure:"start_url" yaml:"start_url" toml:"start_url"`
	// VersionName and VersionCode are answered to GET_APP_VERSION.
	// An empty VersionName falls back to the build version.
	VersionName string `mapstructure:"version_name" yaml:"version_name" toml:"version_name"`
	VersionCode int    `mapstructure:"version_code" yaml:"version_code" toml:"version_code"`
	Title       string `mapstructure:"title" yaml:"title" toml:"title"`
	Fullscreen  bool   `mapstructure:"fullscreen" yaml:"fullscreen" toml:"fullscreen"`
	// ColorScheme styles the shell's overlays: "system", "dark" or "light".
	ColorScheme string `mapstructure:"color_scheme" yaml:"color_scheme" toml:"color_scheme" jsonschema:"enum=system,enum=dark,enum=light"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`

	// CaptureGTKLogs routes GLib/GTK/WebKit messages into the logger.
	CaptureGTKLogs bool `mapstructure:"capture_gtk_logs" yaml:"capture_gtk_logs" toml:"capture_gtk_logs"`
}

// DownloadsConfig holds download handling preferences.
type DownloadsConfig struct {
	// Dir is the public downloads area. Empty means the XDG download dir.
	Dir string `mapstructure:"dir" yaml:"dir" toml:"dir"`
}

// BridgeConfig tunes the script bridge.
type BridgeConfig struct {
	// HandlerName is the WebKit script message handler registered for the page.
	HandlerName string `mapstructure:"handler_name" yaml:"handler_name" toml:"handler_name"`
	// DelayedWorkMs is how long DELAYED_WORK runs before answering.
	DelayedWorkMs int `mapstructure:"delayed_work_ms" yaml:"delayed_work_ms" toml:"delayed_work_ms"`
}

// ScannerConfig selects the D-Bus signal carrying barcode scans.
type ScannerConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Interface string `mapstructure:"interface" yaml:"interface" toml:"interface"`
	Member    string `mapstructure:"member" yaml:"member" toml:"member"`
	DataKey   string `mapstructure:"data_key" yaml:"data_key" toml:"data_key"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" toml:"path"`
}

// CookiePolicy controls cookie acceptance behavior.
type CookiePolicy string

const (
	CookiePolicyAlways       CookiePolicy = "always"
	CookiePolicyNoThirdParty CookiePolicy = "no_third_party"
	CookiePolicyNever        CookiePolicy = "never"
)

// WebKitConfig holds WebKit session and view settings.
type WebKitConfig struct {
	// DataDir and CacheDir back the persistent network session. Empty means XDG defaults.
	DataDir      string       `mapstructure:"data_dir" yaml:"data_dir" toml:"data_dir"`
	CacheDir     string       `mapstructure:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`
	CookiePolicy CookiePolicy `mapstructure:"cookie_policy" yaml:"cookie_policy" toml:"cookie_policy" jsonschema:"enum=always,enum=no_third_party,enum=never"`
	// UserAgent overrides WebKit's default user agent when set.
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent" toml:"user_agent"`
	EnableDevTools bool   `mapstructure:"enable_devtools" yaml:"enable_devtools" toml:"enable_devtools"`
}

// NotificationsConfig controls desktop notifications and in-window toasts.
type NotificationsConfig struct {
	// Enabled toggles desktop notifications for finished downloads.
	Enabled         bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	ToastDurationMs int  `mapstructure:"toast_duration_ms" yaml:"toast_duration_ms" toml:"toast_duration_ms"`
}
