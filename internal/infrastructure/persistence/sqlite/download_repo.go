package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/domain/repository"
	"github.com/bnema/webshell/internal/logging"
)

const (
	insertDownload = `INSERT INTO downloads (id, source_url, filename, mime_type, path, size, route, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectRecentDownloads = `SELECT id, source_url, filename, mime_type, path, size, route, created_at
FROM downloads ORDER BY created_at DESC, rowid DESC LIMIT ?`
	deleteAllDownloads = `DELETE FROM downloads`
)

type downloadRepo struct {
	db *sql.DB
}

// NewDownloadRepository creates a new SQLite-backed download history repository.
func NewDownloadRepository(db *sql.DB) repository.DownloadRepository {
	return &downloadRepo{db: db}
}

func (r *downloadRepo) Save(ctx context.Context, record *entity.DownloadRecord) error {
	logging.FromContext(ctx).Debug().
		Str("id", record.ID).
		Str("filename", record.Filename).
		Msg("saving download record")

	_, err := r.db.ExecContext(ctx, insertDownload,
		record.ID,
		record.SourceURL,
		record.Filename,
		record.MIMEType,
		record.Path,
		record.Size,
		record.Route,
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert download %s: %w", record.ID, err)
	}
	return nil
}

func (r *downloadRepo) GetRecent(ctx context.Context, limit int) ([]*entity.DownloadRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentDownloads, limit)
	if err != nil {
		return nil, fmt.Errorf("query downloads: %w", err)
	}
	defer rows.Close()

	records := make([]*entity.DownloadRecord, 0, max(limit, 0))
	for rows.Next() {
		var (
			rec       entity.DownloadRecord
			createdMs int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SourceURL,
			&rec.Filename,
			&rec.MIMEType,
			&rec.Path,
			&rec.Size,
			&rec.Route,
			&createdMs,
		); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdMs)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *downloadRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, deleteAllDownloads)
	return err
}
