package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config") // Name without extension
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// WEBSHELL_APP_START_URL, WEBSHELL_DOWNLOADS_DIR, ...
	v.SetEnvPrefix("WEBSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "WEBSHELL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind WEBSHELL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "WEBSHELL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind WEBSHELL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// decode turns what viper last read into a resolved, validated Config.
func (m *Manager) decode() (*Config, error) {
	config, err := m.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	if err := resolvePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if createErr := m.createDefaultConfig(); createErr != nil {
				configDir, _ := GetConfigDir()
				return fmt.Errorf(
					"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
					configDir,
					createErr,
				)
			}
			if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
				return fmt.Errorf(
					"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
					rereadErr,
				)
			}
		} else {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

// resolvePaths fills every empty path with its XDG default.
func resolvePaths(config *Config) error {
	resolvers := []struct {
		target *string
		get    func() (string, error)
		name   string
	}{
		{&config.Database.Path, GetDatabaseFile, "database path"},
		{&config.Downloads.Dir, GetDownloadDir, "download directory"},
		{&config.WebKit.DataDir, GetWebKitDataDir, "webkit data directory"},
		{&config.WebKit.CacheDir, GetWebKitCacheDir, "webkit cache directory"},
		{&config.Logging.LogDir, GetLogDir, "log directory"},
	}
	for _, r := range resolvers {
		if *r.target != "" {
			continue
		}
		path, err := r.get()
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", r.name, err)
		}
		*r.target = path
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	switch strings.ToLower(string(config.WebKit.CookiePolicy)) {
	case "", string(CookiePolicyAlways):
		config.WebKit.CookiePolicy = CookiePolicyAlways
	case string(CookiePolicyNoThirdParty):
		config.WebKit.CookiePolicy = CookiePolicyNoThirdParty
	case string(CookiePolicyNever):
		config.WebKit.CookiePolicy = CookiePolicyNever
	}

	config.App.StartURL = strings.TrimSpace(config.App.StartURL)
	config.App.ColorScheme = strings.ToLower(strings.TrimSpace(config.App.ColorScheme))
	if config.App.ColorScheme == "" {
		config.App.ColorScheme = defaultColorScheme
	}
	config.Bridge.HandlerName = strings.TrimSpace(config.Bridge.HandlerName)
	config.WebKit.UserAgent = strings.TrimSpace(config.WebKit.UserAgent)
}

// DelayedWork returns the DELAYED_WORK duration.
func (c *Config) DelayedWork() time.Duration {
	return time.Duration(c.Bridge.DelayedWorkMs) * time.Millisecond
}

// LogFile returns the log file path, or "" when file logging is off.
func (c *Config) LogFile() string {
	if !c.Logging.EnableFileLog || c.Logging.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Logging.LogDir, appName+".log")
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	if _, err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setAppDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setDownloadsDefaults(defaults)
	m.setBridgeDefaults(defaults)
	m.setScannerDefaults(defaults)
	m.setDatabaseDefaults(defaults)
	m.setWebKitDefaults(defaults)
	m.setNotificationsDefaults(defaults)
}

func (m *Manager) setAppDefaults(defaults *Config) {
	m.viper.SetDefault("app.start_url", defaults.App.StartURL)
	m.viper.SetDefault("app.version_name", defaults.App.VersionName)
	m.viper.SetDefault("app.version_code", defaults.App.VersionCode)
	m.viper.SetDefault("app.title", defaults.App.Title)
	m.viper.SetDefault("app.fullscreen", defaults.App.Fullscreen)
	m.viper.SetDefault("app.color_scheme", defaults.App.ColorScheme)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.capture_gtk_logs", defaults.Logging.CaptureGTKLogs)
}

func (m *Manager) setDownloadsDefaults(defaults *Config) {
	m.viper.SetDefault("downloads.dir", defaults.Downloads.Dir)
}

func (m *Manager) setBridgeDefaults(defaults *Config) {
	m.viper.SetDefault("bridge.handler_name", defaults.Bridge.HandlerName)
	m.viper.SetDefault("bridge.delayed_work_ms", defaults.Bridge.DelayedWorkMs)
}

func (m *Manager) setScannerDefaults(defaults *Config) {
	m.viper.SetDefault("scanner.enabled", defaults.Scanner.Enabled)
	m.viper.SetDefault("scanner.interface", defaults.Scanner.Interface)
	m.viper.SetDefault("scanner.member", defaults.Scanner.Member)
	m.viper.SetDefault("scanner.data_key", defaults.Scanner.DataKey)
}

func (m *Manager) setDatabaseDefaults(defaults *Config) {
	m.viper.SetDefault("database.path", defaults.Database.Path)
}

func (m *Manager) setWebKitDefaults(defaults *Config) {
	m.viper.SetDefault("webkit.data_dir", defaults.WebKit.DataDir)
	m.viper.SetDefault("webkit.cache_dir", defaults.WebKit.CacheDir)
	m.viper.SetDefault("webkit.cookie_policy", string(defaults.WebKit.CookiePolicy))
	m.viper.SetDefault("webkit.user_agent", defaults.WebKit.UserAgent)
	m.viper.SetDefault("webkit.enable_devtools", defaults.WebKit.EnableDevTools)
}

func (m *Manager) setNotificationsDefaults(defaults *Config) {
	m.viper.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	m.viper.SetDefault("notifications.toast_duration_ms", defaults.Notifications.ToastDurationMs)
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		// Return defaults if not initialized
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
// This is useful for accessing watcher functionality.
func GetManager() *Manager {
	return globalManager
}
