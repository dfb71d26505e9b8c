package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const (
	appName      = "webshell"
	databaseName = "webshell.sqlite"

	dirPerm  = 0o755
	filePerm = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
	CacheHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for webshell:
// - $XDG_CONFIG_HOME/webshell (default: ~/.config/webshell)
// - $XDG_DATA_HOME/webshell (default: ~/.local/share/webshell)
// - $XDG_STATE_HOME/webshell (default: ~/.local/state/webshell)
// - $XDG_CACHE_HOME/webshell (default: ~/.cache/webshell)
func GetXDGDirs() (*XDGDirs, error) {
	// Development mode: use .dev directory in current working directory
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{
			ConfigHome: devDir,
			DataHome:   devDir,
			StateHome:  devDir,
			CacheHome:  filepath.Join(devDir, "cache"),
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: filepath.Join(xdgBase("XDG_CONFIG_HOME", homeDir, ".config"), appName),
		DataHome:   filepath.Join(xdgBase("XDG_DATA_HOME", homeDir, ".local", "share"), appName),
		StateHome:  filepath.Join(xdgBase("XDG_STATE_HOME", homeDir, ".local", "state"), appName),
		CacheHome:  filepath.Join(xdgBase("XDG_CACHE_HOME", homeDir, ".cache"), appName),
	}, nil
}

func xdgBase(env, home string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetConfigDir returns the XDG config directory for webshell.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for webshell.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for webshell.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetCacheDir returns the XDG cache directory for webshell.
func GetCacheDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.CacheHome, nil
}

// GetLogDir returns the XDG-compliant log directory.
// Logs are stored in XDG_STATE_HOME as per specification.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// GetDatabaseFile returns the path to the download history database.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// GetWebKitDataDir returns the directory backing WebKit's persistent session
// (cookies.db, local storage).
func GetWebKitDataDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "webkit"), nil
}

// GetWebKitCacheDir returns the WebKit network cache directory.
func GetWebKitCacheDir() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "webkit"), nil
}

// GetDownloadDir resolves the user's download directory:
// $XDG_DOWNLOAD_DIR, then XDG_DOWNLOAD_DIR in user-dirs.dirs, then ~/Downloads.
func GetDownloadDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return expandHome(dir, homeDir), nil
	}

	userDirs := filepath.Join(xdgBase("XDG_CONFIG_HOME", homeDir, ".config"), "user-dirs.dirs")
	if dir := readUserDir(userDirs, "XDG_DOWNLOAD_DIR", homeDir); dir != "" {
		return dir, nil
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// readUserDir extracts one entry from an xdg-user-dirs file.
// Lines look like: XDG_DOWNLOAD_DIR="$HOME/Downloads"
func readUserDir(path, key, homeDir string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(name) != key {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value == "" {
			return ""
		}
		return expandHome(value, homeDir)
	}
	return ""
}

func expandHome(path, homeDir string) string {
	switch {
	case strings.HasPrefix(path, "$HOME"):
		return filepath.Join(homeDir, strings.TrimPrefix(path, "$HOME"))
	case path == "~" || strings.HasPrefix(path, "~/"):
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}

	directories := []string{
		dirs.ConfigHome,
		dirs.DataHome,
		dirs.StateHome,
		dirs.CacheHome,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}

	return nil
}
