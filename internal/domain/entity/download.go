// Package entity holds records persisted by the shell.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DownloadRecord is one completed download kept in history.
type DownloadRecord struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"source_url"`
	Filename  string    `json:"filename"`
	MIMEType  string    `json:"mime_type"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Route     string    `json:"route"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDownloadRecord creates a record with a fresh id stamped now.
func NewDownloadRecord(sourceURL, filename, mimeType, path string, size int64, route string) *DownloadRecord {
	return &DownloadRecord{
		ID:        uuid.NewString(),
		SourceURL: sourceURL,
		Filename:  filename,
		MIMEType:  mimeType,
		Path:      path,
		Size:      size,
		Route:     route,
		CreatedAt: time.Now(),
	}
}
