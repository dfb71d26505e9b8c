// Package port declares what the use cases and the bridge need from the
// window, WebKit and the host system.
package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the download history database. The window
// never opens it before the first finished download.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
}
