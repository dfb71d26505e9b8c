// Package desktop integrates webshell with the freedesktop environment:
// launcher entry, file opening and notifications.
package desktop

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bnema/webshell/internal/logging"
)

const (
	appName         = "webshell"
	desktopFileName = "webshell.desktop"
	filePerm        = 0o644
	dirPerm         = 0o755
)

// desktopFileTemplate is the freedesktop.org desktop entry format.
// %s placeholder for executable path.
const desktopFileTemplate = `[Desktop Entry]
Version=1.1
Type=Application
Name=webshell
GenericName=Web App Shell
Comment=Kiosk shell for a hosted web application
Exec=%s run
Icon=applications-internet
Terminal=false
Categories=Network;Utility;
StartupNotify=true
StartupWMClass=webshell
`

// Launcher installs the application's desktop entry.
type Launcher struct {
	updateDesktopDB string
}

// NewLauncher creates a launcher installer.
func NewLauncher() *Launcher {
	l := &Launcher{}
	// Detect update-desktop-database (optional)
	if path, err := exec.LookPath("update-desktop-database"); err == nil {
		l.updateDesktopDB = path
	}
	return l
}

// getApplicationsDir returns the XDG applications directory.
func getApplicationsDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "applications"), nil
}

// DesktopFilePath returns the full path to the desktop file.
func DesktopFilePath() (string, error) {
	appDir, err := getApplicationsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, desktopFileName), nil
}

// getExecutablePath returns the path to the running webshell executable.
func getExecutablePath() (string, error) {
	execPath, err := os.Executable()
	if err == nil {
		if resolved, symlinkErr := filepath.EvalSymlinks(execPath); symlinkErr == nil {
			execPath = resolved
		}
		return execPath, nil
	}

	path, err := exec.LookPath(appName)
	if err != nil {
		return "", fmt.Errorf("cannot find %s executable: %w", appName, err)
	}
	return path, nil
}

// Install writes the desktop file into the XDG applications directory.
func (l *Launcher) Install(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	execPath, err := getExecutablePath()
	if err != nil {
		return "", err
	}
	desktopPath, err := DesktopFilePath()
	if err != nil {
		return "", err
	}

	appDir := filepath.Dir(desktopPath)
	if err := os.MkdirAll(appDir, dirPerm); err != nil {
		return "", fmt.Errorf("create applications dir: %w", err)
	}

	content := fmt.Sprintf(desktopFileTemplate, execPath)
	if err := os.WriteFile(desktopPath, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("write desktop file: %w", err)
	}

	log.Info().Str("path", desktopPath).Msg("desktop file installed")
	l.refresh(ctx, appDir)
	return desktopPath, nil
}

// Remove deletes the desktop file. A missing file is not an error.
func (l *Launcher) Remove(ctx context.Context) error {
	log := logging.FromContext(ctx)

	desktopPath, err := DesktopFilePath()
	if err != nil {
		return err
	}

	if err := os.Remove(desktopPath); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", desktopPath).Msg("desktop file not found (already removed)")
			return nil
		}
		return fmt.Errorf("remove desktop file: %w", err)
	}

	log.Info().Str("path", desktopPath).Msg("desktop file removed")
	l.refresh(ctx, filepath.Dir(desktopPath))
	return nil
}

func (l *Launcher) refresh(ctx context.Context, appDir string) {
	if l.updateDesktopDB == "" {
		return
	}
	if err := exec.CommandContext(ctx, l.updateDesktopDB, appDir).Run(); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("update-desktop-database failed (non-fatal)")
	}
}
