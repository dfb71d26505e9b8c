package usecase

import (
	"context"
	"path/filepath"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/logging"
)

// PrepareDownloadInput contains the inputs for preparing a download destination.
type PrepareDownloadInput struct {
	// Filename is the resolved name; an empty name falls back to the URI.
	Filename string
	// MIMEType fills in a missing extension.
	MIMEType string
	// SourceURL is the last-resort name source.
	SourceURL string
	// DownloadDir is the directory where downloads should be saved.
	DownloadDir string
}

// PrepareDownloadOutput contains the resolved download destination.
type PrepareDownloadOutput struct {
	// Filename is the sanitized, unique filename to use.
	Filename string
	// DestinationPath is the full path where the download should be saved.
	DestinationPath string
}

// PrepareDownloadUseCase turns a candidate filename into a safe, unused
// destination inside the downloads directory.
type PrepareDownloadUseCase struct {
	paths port.PathProber
}

// NewPrepareDownloadUseCase creates a new PrepareDownloadUseCase.
// If paths is nil, filename deduplication is disabled.
func NewPrepareDownloadUseCase(paths port.PathProber) *PrepareDownloadUseCase {
	return &PrepareDownloadUseCase{paths: paths}
}

// Execute resolves the download filename and destination path.
func (u *PrepareDownloadUseCase) Execute(ctx context.Context, input PrepareDownloadInput) *PrepareDownloadOutput {
	log := logging.FromContext(ctx)

	name := input.Filename
	if name == "" && input.SourceURL != "" {
		name = download.ExtractFilenameFromURI(input.SourceURL)
	}

	safeName := download.SanitizeFilenameWithExtension(name, input.MIMEType)

	if u.paths != nil {
		safeName = download.MakeUniqueFilename(input.DownloadDir, safeName, func(path string) bool {
			exists, err := u.paths.Exists(ctx, path)
			return err == nil && exists
		})
	}

	destPath := filepath.Join(input.DownloadDir, safeName)

	log.Debug().
		Str("requested", input.Filename).
		Str("sanitized", safeName).
		Str("destPath", destPath).
		Msg("prepared download destination")

	return &PrepareDownloadOutput{
		Filename:        safeName,
		DestinationPath: destPath,
	}
}
