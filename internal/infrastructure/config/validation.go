package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateApp(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateBridge(config)...)
	validationErrors = append(validationErrors, validateScanner(config)...)
	validationErrors = append(validationErrors, validateWebKit(config)...)
	validationErrors = append(validationErrors, validateNotifications(config)...)

	// If there are validation errors, return them
	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateApp(config *Config) []string {
	var validationErrors []string
	if strings.TrimSpace(config.App.StartURL) == "" {
		validationErrors = append(validationErrors, "app.start_url cannot be empty")
	} else if u, err := url.Parse(config.App.StartURL); err != nil || u.Scheme == "" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("app.start_url must be an absolute URL (got: %q)", config.App.StartURL))
	}
	switch config.App.ColorScheme {
	case "system", "dark", "light":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("app.color_scheme must be one of system, dark, light (got: %s)", config.App.ColorScheme))
	}
	if config.App.VersionCode < 0 {
		validationErrors = append(validationErrors, "app.version_code must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got: %s)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateBridge(config *Config) []string {
	var validationErrors []string
	name := config.Bridge.HandlerName
	if name == "" {
		validationErrors = append(validationErrors, "bridge.handler_name cannot be empty")
	} else if strings.ContainsAny(name, " .'\"\\") {
		validationErrors = append(validationErrors,
			fmt.Sprintf("bridge.handler_name must be a plain identifier (got: %q)", name))
	}
	if config.Bridge.DelayedWorkMs < 0 {
		validationErrors = append(validationErrors, "bridge.delayed_work_ms must be non-negative")
	}
	return validationErrors
}

func validateScanner(config *Config) []string {
	if !config.Scanner.Enabled {
		return nil
	}
	var validationErrors []string
	if config.Scanner.Interface == "" {
		validationErrors = append(validationErrors, "scanner.interface cannot be empty when the scanner is enabled")
	}
	if config.Scanner.Member == "" {
		validationErrors = append(validationErrors, "scanner.member cannot be empty when the scanner is enabled")
	}
	if config.Scanner.DataKey == "" {
		validationErrors = append(validationErrors, "scanner.data_key cannot be empty when the scanner is enabled")
	}
	return validationErrors
}

func validateWebKit(config *Config) []string {
	switch config.WebKit.CookiePolicy {
	case CookiePolicyAlways, CookiePolicyNoThirdParty, CookiePolicyNever:
		return nil
	default:
		return []string{fmt.Sprintf(
			"webkit.cookie_policy must be one of always, no_third_party, never (got: %s)",
			config.WebKit.CookiePolicy,
		)}
	}
}

func validateNotifications(config *Config) []string {
	if config.Notifications.ToastDurationMs < 0 {
		return []string{"notifications.toast_duration_ms must be non-negative"}
	}
	return nil
}
