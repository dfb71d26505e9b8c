package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/domain/repository"
	"github.com/bnema/webshell/internal/logging"
)

// ErrDecodePayload is returned when a blob payload is not valid base64.
var ErrDecodePayload = errors.New("invalid download payload")

// maxNameAttempts bounds retries when a concurrent download takes the
// chosen name between preparation and write.
const maxNameAttempts = 5

// PersistDownloadInput is the DOWNLOAD_BLOB payload.
type PersistDownloadInput struct {
	Base64    string
	MIMEType  string
	Filename  string
	SourceURL string
}

// PersistDownloadOutput describes the stored file.
type PersistDownloadOutput struct {
	Descriptor download.Descriptor
	Path       string
}

// PersistDownloadUseCase stores a blob payload in the downloads area and
// announces it.
type PersistDownloadUseCase struct {
	store    port.DownloadStore
	prepare  *PrepareDownloadUseCase
	notifier port.DesktopNotifier
	toaster  port.Toaster
	main     port.MainThread
	history  repository.DownloadRepository
	events   port.EventEmitter
	now      func() time.Time
}

// PersistDownloadDeps groups the collaborators of PersistDownloadUseCase.
// Notifier, History and Events are optional.
type PersistDownloadDeps struct {
	Store    port.DownloadStore
	Prepare  *PrepareDownloadUseCase
	Notifier port.DesktopNotifier
	Toaster  port.Toaster
	Main     port.MainThread
	History  repository.DownloadRepository
	Events   port.EventEmitter
}

// NewPersistDownloadUseCase creates a new PersistDownloadUseCase.
func NewPersistDownloadUseCase(deps PersistDownloadDeps) *PersistDownloadUseCase {
	prepare := deps.Prepare
	if prepare == nil {
		prepare = NewPrepareDownloadUseCase(nil)
	}
	return &PersistDownloadUseCase{
		store:    deps.Store,
		prepare:  prepare,
		notifier: deps.Notifier,
		toaster:  deps.Toaster,
		main:     deps.Main,
		history:  deps.History,
		events:   deps.Events,
		now:      time.Now,
	}
}

// Execute decodes, names, writes and announces one payload. Any failure
// shows a single error toast, emits a failed download event and leaves no
// partial file behind.
func (u *PersistDownloadUseCase) Execute(ctx context.Context, input PersistDownloadInput) (*PersistDownloadOutput, error) {
	log := logging.FromContext(ctx)

	payload, err := DecodePayload(input.Base64)
	if err != nil {
		u.fail(ctx, input.Filename, err)
		return nil, err
	}

	desc := download.NewBlobDescriptor(input.SourceURL, payload, input.MIMEType, input.Filename, u.now())

	path, name, err := u.write(ctx, desc)
	if err != nil {
		u.fail(ctx, desc.FinalFilename, err)
		return nil, err
	}
	desc.FinalFilename = name

	log.Info().
		Str("filename", desc.FinalFilename).
		Str("mime", desc.FinalMIMEType).
		Int("bytes", len(payload)).
		Str("path", path).
		Msg("blob download stored")

	postToast(ctx, u.main, u.toaster, "Downloaded "+desc.FinalFilename, port.NotificationSuccess)
	u.announce(ctx, desc, path)
	u.record(ctx, desc, path)
	u.emit(ctx, port.DownloadOutcome{
		Status:   port.DownloadStatusFinished,
		Route:    desc.Route.String(),
		Filename: desc.FinalFilename,
		Path:     path,
		MIMEType: desc.FinalMIMEType,
	})

	return &PersistDownloadOutput{Descriptor: desc, Path: path}, nil
}

// write places the payload under a fresh unique name, retrying when the
// name is taken concurrently. It returns the path and the name used.
func (u *PersistDownloadUseCase) write(ctx context.Context, desc download.Descriptor) (string, string, error) {
	var lastErr error
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		prepared := u.prepare.Execute(ctx, PrepareDownloadInput{
			Filename:    desc.FinalFilename,
			MIMEType:    desc.FinalMIMEType,
			DownloadDir: u.store.Dir(),
		})

		err := u.store.WriteFile(ctx, prepared.DestinationPath, desc.Payload)
		if err == nil {
			return prepared.DestinationPath, prepared.Filename, nil
		}
		if !errors.Is(err, port.ErrDestinationExists) {
			return "", "", fmt.Errorf("write download: %w", err)
		}
		lastErr = err
	}
	return "", "", fmt.Errorf("write download: %w", lastErr)
}

func (u *PersistDownloadUseCase) announce(ctx context.Context, desc download.Descriptor, path string) {
	if u.notifier == nil {
		return
	}
	err := u.notifier.NotifyFile(ctx, port.FileNotice{
		Title:    "Download complete",
		Body:     desc.FinalFilename,
		Path:     path,
		MIMEType: desc.FinalMIMEType,
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("desktop notification failed")
	}
}

func (u *PersistDownloadUseCase) record(ctx context.Context, desc download.Descriptor, path string) {
	if u.history == nil {
		return
	}
	rec := entity.NewDownloadRecord(desc.SourceURL, desc.FinalFilename, desc.FinalMIMEType, path,
		int64(len(desc.Payload)), desc.Route.String())
	if err := u.history.Save(ctx, rec); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to record download")
	}
}

func (u *PersistDownloadUseCase) fail(ctx context.Context, filename string, err error) {
	logging.FromContext(ctx).Error().Err(err).Msg("blob download failed")
	postToast(ctx, u.main, u.toaster, "Download failed", port.NotificationError)
	u.emit(ctx, port.DownloadOutcome{
		Status:   port.DownloadStatusFailed,
		Route:    download.RouteBlob.String(),
		Filename: filename,
		Error:    err.Error(),
	})
}

func (u *PersistDownloadUseCase) emit(ctx context.Context, outcome port.DownloadOutcome) {
	if u.events == nil {
		return
	}
	if err := u.events.Emit(ctx, port.DownloadEventName, outcome); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to emit download event")
	}
}

// DecodePayload decodes standard base64, tolerating whitespace, missing
// padding, URL-safe alphabet and a leading data: URL header.
func DecodePayload(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimRight(s, "=")

	data, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		var urlErr error
		data, urlErr = base64.RawURLEncoding.DecodeString(s)
		if urlErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodePayload, err)
		}
	}
	return data, nil
}
