// Package repository declares the persistence contracts of the domain.
package repository

import (
	"context"

	"github.com/bnema/webshell/internal/domain/entity"
)

// DownloadRepository persists download history.
type DownloadRepository interface {
	// Save inserts a record.
	Save(ctx context.Context, record *entity.DownloadRecord) error

	// GetRecent returns the newest records first.
	GetRecent(ctx context.Context, limit int) ([]*entity.DownloadRecord, error)

	// DeleteAll removes every record.
	DeleteAll(ctx context.Context) error
}
