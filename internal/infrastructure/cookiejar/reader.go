// Package cookiejar reads the cookies WebKit persists in its SQLite store so
// out-of-process transfers can present the page's session.
package cookiejar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/webshell/internal/logging"
	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary
)

// FileName is the store WebKit writes under its data directory.
const FileName = "cookies.db"

const selectCookies = `SELECT id, name, value, host, path, expiry, isSecure FROM moz_cookies`

// Cookie is one persisted cookie row.
type Cookie struct {
	ID     int64
	Name   string
	Value  string
	Host   string
	Path   string
	Expiry time.Time
	Secure bool
}

// Reader builds Cookie headers from a WebKit cookie store.
type Reader struct {
	path string
	now  func() time.Time

	mu sync.Mutex
	db *sql.DB
}

// NewReader creates a reader for the store at path. The file may not exist yet.
func NewReader(path string) *Reader {
	return &Reader{path: path, now: time.Now}
}

// CookieHeader returns the Cookie header value WebKit would send to rawURL.
// A missing store yields an empty header.
func (r *Reader) CookieHeader(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Hostname() == "" {
		return "", nil
	}

	cookies, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	header := Header(Match(cookies, u, r.now()))

	logging.FromContext(ctx).Debug().
		Str("host", u.Hostname()).
		Int("stored", len(cookies)).
		Bool("has_cookie", header != "").
		Msg("resolved cookies for transfer")
	return header, nil
}

func (r *Reader) load(ctx context.Context) ([]Cookie, error) {
	db, err := r.open()
	if err != nil || db == nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectCookies)
	if err != nil {
		// WebKit creates the table on first cookie write.
		if strings.Contains(err.Error(), "no such table") {
			return nil, nil
		}
		return nil, fmt.Errorf("query cookies: %w", err)
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			c      Cookie
			expiry sql.NullInt64
			secure sql.NullInt64
			path   sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Value, &c.Host, &path, &expiry, &secure); err != nil {
			return nil, fmt.Errorf("scan cookie: %w", err)
		}
		c.Path = path.String
		if expiry.Valid && expiry.Int64 > 0 {
			c.Expiry = time.Unix(expiry.Int64, 0)
		}
		c.Secure = secure.Int64 != 0
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}

func (r *Reader) open() (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+r.path+"?mode=ro&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("open cookie store: %w", err)
	}
	db.SetMaxOpenConns(1)
	r.db = db
	return db, nil
}

// Close releases the store handle.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Match selects the cookies sent to u at now: domain and path must match,
// expired cookies are skipped and secure cookies require https.
// Longer paths come first, then older rows.
func Match(cookies []Cookie, u *url.URL, now time.Time) []Cookie {
	host := strings.ToLower(u.Hostname())
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	secure := u.Scheme == "https" || u.Scheme == "wss"

	var out []Cookie
	for _, c := range cookies {
		if !c.Expiry.IsZero() && !c.Expiry.After(now) {
			continue
		}
		if c.Secure && !secure {
			continue
		}
		if !domainMatch(host, c.Host) || !pathMatch(path, c.Path) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Path) != len(out[j].Path) {
			return len(out[i].Path) > len(out[j].Path)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Header joins cookies into a Cookie header value.
func Header(cookies []Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// domainMatch follows RFC 6265 5.1.3. A leading dot marks a domain cookie;
// otherwise the cookie is host-only.
func domainMatch(host, cookieHost string) bool {
	cookieHost = strings.ToLower(cookieHost)
	if domain, ok := strings.CutPrefix(cookieHost, "."); ok {
		return host == domain || strings.HasSuffix(host, "."+domain)
	}
	return host == cookieHost
}

// pathMatch follows RFC 6265 5.1.4.
func pathMatch(reqPath, cookiePath string) bool {
	if cookiePath == "" || cookiePath == "/" {
		return true
	}
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
}
