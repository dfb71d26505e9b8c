package port

import (
	"context"
	"errors"
	"io"
)

// DownloadEventType represents the type of download event.
type DownloadEventType int

const (
	// DownloadEventStarted indicates a download has begun.
	DownloadEventStarted DownloadEventType = iota
	// DownloadEventFinished indicates a download completed successfully.
	DownloadEventFinished
	// DownloadEventFailed indicates a download failed.
	DownloadEventFailed
)

// DownloadEvent contains information about a download event.
type DownloadEvent struct {
	Type        DownloadEventType
	TransferID  TransferID
	Filename    string
	Destination string
	Error       error // Set when Type is DownloadEventFailed
}

// DownloadEventHandler receives download event notifications.
type DownloadEventHandler interface {
	OnDownloadEvent(ctx context.Context, event DownloadEvent)
}

// TransferID identifies a queued direct transfer.
type TransferID string

// TransferRequest asks the transfer manager to fetch a URL into the
// downloads area. Persistence and completion notices belong to the manager.
type TransferRequest struct {
	URL         string
	Filename    string
	MIMEType    string
	Cookie      string
	UserAgent   string
	Description string
}

// TransferQueue accepts direct transfers. Enqueue returns immediately.
type TransferQueue interface {
	Enqueue(ctx context.Context, req TransferRequest) (TransferID, error)
}

// DownloadStore writes files into the public downloads area.
type DownloadStore interface {
	// Dir is the downloads directory.
	Dir() string
	// WriteFile stores data at path atomically: the file either appears
	// complete or not at all. An existing path is never replaced.
	WriteFile(ctx context.Context, path string, data []byte) error
	// WriteStream is WriteFile for a stream and returns the bytes written.
	WriteStream(ctx context.Context, path string, r io.Reader) (int64, error)
}

// ScanSource delivers hardware scan results until ctx is done.
type ScanSource interface {
	Listen(ctx context.Context, onScan func(data string)) error
}

// ErrDestinationExists is returned by DownloadStore writes when the target
// path is already taken. Callers pick another name and retry.
var ErrDestinationExists = errors.New("download destination already exists")

// DownloadEventName is the onNativeEvent name announcing download outcomes.
const DownloadEventName = "download"

// Download outcome statuses.
const (
	DownloadStatusFinished = "finished"
	DownloadStatusFailed   = "failed"
)

// DownloadOutcome is the DownloadEventName payload.
type DownloadOutcome struct {
	Status   string `json:"status"`
	Route    string `json:"route"`
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Error    string `json:"error,omitempty"`
}

// EventEmitter pushes unsolicited events into the hosted page.
type EventEmitter interface {
	Emit(ctx context.Context, event string, payload any) error
}
