package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// ErrClosed is returned by LazyDB.DB after Close.
var ErrClosed = errors.New("database closed")

// LazyDB opens the history database on first use. The window only needs
// it once a download finished, so startup never pays for the WASM
// compilation or the migrations. A failed open is retried on the next call.
type LazyDB struct {
	path string

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB returns a provider for the database at path. Nothing is
// touched on disk until DB is called.
func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

// DB returns the shared connection, opening and migrating it if needed.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.closed:
		return nil, ErrClosed
	case l.db != nil:
		return l.db, nil
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("path", l.path).Msg("opening history database")
	db, err := NewConnection(ctx, l.path)
	if err != nil {
		log.Error().Err(err).Str("path", l.path).Msg("history database unavailable")
		return nil, fmt.Errorf("open history database: %w", err)
	}
	l.db = db
	return db, nil
}

// Close closes the connection if one was opened. Later DB calls fail.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// IsInitialized reports whether a connection is open.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.path
}
