package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// ErrNoOpener is returned when neither gtk-launch nor xdg-open is installed.
var ErrNoOpener = errors.New("no file opener available")

// Opener opens files with the application the desktop registers for their
// MIME type, falling back to xdg-open.
type Opener struct {
	lookPath func(string) (string, error)
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)
	start    func(name string, args ...string) error
}

// NewOpener creates an opener backed by xdg-utils.
func NewOpener() *Opener {
	return &Opener{
		lookPath: exec.LookPath,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		start: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			// Reap the child; the launched application outlives us.
			go func() { _ = cmd.Wait() }()
			return nil
		},
	}
}

// Open launches the handler for mimeType on path.
func (o *Opener) Open(ctx context.Context, path, mimeType string) error {
	log := logging.FromContext(ctx)

	if app := o.defaultApp(ctx, mimeType); app != "" {
		if launcher, err := o.lookPath("gtk-launch"); err == nil {
			log.Debug().Str("app", app).Str("path", path).Msg("opening file with default application")
			err := o.start(launcher, app, path)
			if err == nil {
				return nil
			}
			log.Debug().Err(err).Msg("gtk-launch failed, falling back to xdg-open")
		}
	}

	xdgOpen, err := o.lookPath("xdg-open")
	if err != nil {
		return ErrNoOpener
	}
	log.Debug().Str("path", path).Msg("opening file with xdg-open")
	if err := o.start(xdgOpen, path); err != nil {
		return fmt.Errorf("xdg-open %s: %w", path, err)
	}
	return nil
}

// defaultApp returns the desktop id registered for mimeType, without the
// .desktop suffix, or "".
func (o *Opener) defaultApp(ctx context.Context, mimeType string) string {
	if mimeType == "" {
		return ""
	}
	xdgMime, err := o.lookPath("xdg-mime")
	if err != nil {
		return ""
	}
	out, err := o.output(ctx, xdgMime, "query", "default", mimeType)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(string(out)), ".desktop")
}

var _ port.FileOpener = (*Opener)(nil)
