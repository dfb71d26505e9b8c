// Package transfer fetches direct-URL downloads in-process. The manager owns
// persistence, history and the completion notice of every queued transfer.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/download"
	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/domain/repository"
	"github.com/bnema/webshell/internal/logging"
)

const (
	defaultTimeout    = 30 * time.Minute
	defaultRetryCount = 2
	maxNameAttempts   = 5
)

var (
	// ErrSchemeNotSupported is returned for URLs the manager cannot fetch.
	ErrSchemeNotSupported = errors.New("transfer scheme not supported")
	// ErrClosed is returned by Enqueue after Close.
	ErrClosed = errors.New("transfer manager closed")
)

// Options tunes the HTTP client.
type Options struct {
	Timeout    time.Duration
	RetryCount int
}

// Deps groups the collaborators of Manager. Notifier, History and Events are optional.
type Deps struct {
	Store    port.DownloadStore
	Prepare  *usecase.PrepareDownloadUseCase
	Notifier port.DesktopNotifier
	History  repository.DownloadRepository
	Events   port.DownloadEventHandler
}

// Manager implements port.TransferQueue over resty.
type Manager struct {
	client   *resty.Client
	store    port.DownloadStore
	prepare  *usecase.PrepareDownloadUseCase
	notifier port.DesktopNotifier
	history  repository.DownloadRepository
	events   port.DownloadEventHandler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewManager creates a transfer manager. Transfers outlive the Enqueue
// context and stop on Close.
func NewManager(deps Deps, opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	prepare := deps.Prepare
	if prepare == nil {
		prepare = usecase.NewPrepareDownloadUseCase(nil)
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		client:   client,
		store:    deps.Store,
		prepare:  prepare,
		notifier: deps.Notifier,
		history:  deps.History,
		events:   deps.Events,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Enqueue validates req and starts it in the background.
func (m *Manager) Enqueue(ctx context.Context, req port.TransferRequest) (port.TransferID, error) {
	if _, err := url.Parse(req.URL); err != nil {
		return "", fmt.Errorf("parse transfer url: %w", err)
	}
	if download.Classify(req.URL) != download.RouteDirect {
		return "", fmt.Errorf("%w: %s", ErrSchemeNotSupported, download.Scheme(req.URL))
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return "", ErrClosed
	}
	m.wg.Add(1)
	m.mu.Unlock()

	id := port.TransferID(uuid.NewString())
	logger := logging.FromContext(ctx).With().
		Str("component", "transfer").
		Str("transfer_id", string(id)).
		Logger()
	runCtx := logging.WithContext(m.ctx, logger)

	logger.Info().Str("url", req.URL).Str("filename", req.Filename).Msg("transfer queued")
	m.emit(runCtx, port.DownloadEvent{Type: port.DownloadEventStarted, TransferID: id, Filename: req.Filename})

	go func() {
		defer m.wg.Done()
		m.run(runCtx, id, req)
	}()
	return id, nil
}

func (m *Manager) run(ctx context.Context, id port.TransferID, req port.TransferRequest) {
	log := logging.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("transfer panicked")
			m.emit(ctx, port.DownloadEvent{
				Type: port.DownloadEventFailed, TransferID: id, Filename: req.Filename,
				Error: fmt.Errorf("transfer panicked: %v", r),
			})
		}
	}()

	path, name, mimeType, size, err := m.fetch(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("transfer failed")
		m.emit(ctx, port.DownloadEvent{Type: port.DownloadEventFailed, TransferID: id, Filename: req.Filename, Error: err})
		return
	}

	log.Info().Str("path", path).Int64("bytes", size).Msg("transfer finished")

	if m.history != nil {
		rec := entity.NewDownloadRecord(req.URL, name, mimeType, path, size, download.RouteDirect.String())
		if err := m.history.Save(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("failed to record transfer")
		}
	}
	if m.notifier != nil {
		err := m.notifier.NotifyFile(ctx, port.FileNotice{
			Title:    "Download complete",
			Body:     name,
			Path:     path,
			MIMEType: mimeType,
		})
		if err != nil {
			log.Warn().Err(err).Msg("desktop notification failed")
		}
	}
	m.emit(ctx, port.DownloadEvent{Type: port.DownloadEventFinished, TransferID: id, Filename: name, Destination: path})
}

// fetch downloads req into a unique destination and returns the path,
// the name used, the effective MIME type and the byte count.
func (m *Manager) fetch(ctx context.Context, req port.TransferRequest) (string, string, string, int64, error) {
	r := m.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	if req.Cookie != "" {
		r.SetHeader("Cookie", req.Cookie)
	}
	if req.UserAgent != "" {
		r.SetHeader("User-Agent", req.UserAgent)
	}

	resp, err := r.Get(req.URL)
	if err != nil {
		return "", "", "", 0, fmt.Errorf("request %s: %w", req.URL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return "", "", "", 0, fmt.Errorf("request %s: unexpected status %s", req.URL, resp.Status())
	}

	mimeType := download.MediaType(req.MIMEType)
	if mimeType == "" {
		mimeType = download.MediaType(resp.Header().Get("Content-Type"))
	}
	name := req.Filename
	if name == "" {
		name = download.GuessFilename(req.URL, resp.Header().Get("Content-Disposition"), mimeType)
	}

	var lastErr error
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		prepared := m.prepare.Execute(ctx, usecase.PrepareDownloadInput{
			Filename:    name,
			MIMEType:    mimeType,
			SourceURL:   req.URL,
			DownloadDir: m.store.Dir(),
		})
		n, err := m.store.WriteStream(ctx, prepared.DestinationPath, body)
		if err == nil {
			return prepared.DestinationPath, prepared.Filename, mimeType, n, nil
		}
		if !errors.Is(err, port.ErrDestinationExists) {
			return "", "", "", n, fmt.Errorf("store transfer: %w", err)
		}
		// The body was consumed into the rejected temp file; only a
		// zero-length response can be retried under a new name.
		if n > 0 {
			return "", "", "", n, fmt.Errorf("store transfer: %w", err)
		}
		lastErr = err
	}
	return "", "", "", 0, fmt.Errorf("store transfer: %w", lastErr)
}

func (m *Manager) emit(ctx context.Context, event port.DownloadEvent) {
	if m.events != nil {
		m.events.OnDownloadEvent(ctx, event)
	}
}

// Close cancels running transfers and waits for them to finish.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
	return nil
}

var _ port.TransferQueue = (*Manager)(nil)
