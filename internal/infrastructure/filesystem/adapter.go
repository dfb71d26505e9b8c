package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Adapter implements port.PathProber and port.DownloadStore on the OS filesystem.
type Adapter struct {
	dir string
}

// New creates a new filesystem adapter rooted at the downloads directory.
func New(downloadDir string) *Adapter {
	return &Adapter{dir: downloadDir}
}

// Dir returns the downloads directory.
func (a *Adapter) Dir() string {
	return a.dir
}

// WriteFile stores data at path through a temp file and a hard link, so the
// destination appears complete or not at all and is never clobbered.
func (a *Adapter) WriteFile(ctx context.Context, path string, data []byte) error {
	_, err := a.commit(ctx, path, func(f *os.File) (int64, error) {
		n, err := f.Write(data)
		return int64(n), err
	})
	return err
}

// WriteStream is WriteFile for a stream. Cancelling ctx aborts the copy.
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader) (int64, error) {
	return a.commit(ctx, path, func(f *os.File) (int64, error) {
		return io.Copy(f, ctxReader{ctx: ctx, r: r})
	})
}

func (a *Adapter) commit(ctx context.Context, path string, fill func(*os.File) (int64, error)) (int64, error) {
	log := logging.FromContext(ctx)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return 0, fmt.Errorf("create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".webshell-*.part")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Debug().Err(rmErr).Str("tmp", tmpPath).Msg("failed to remove temp file")
		}
	}()

	n, err := fill(tmp)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return n, fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return n, port.ErrDestinationExists
		}
		return n, fmt.Errorf("commit %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// Exists reports whether path is present. Stat errors other than
// not-exist are returned.
func (a *Adapter) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

var (
	_ port.PathProber    = (*Adapter)(nil)
	_ port.DownloadStore = (*Adapter)(nil)
)
