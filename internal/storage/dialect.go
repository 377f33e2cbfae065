package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// dialect describes how to reach one kind of relational store.
type dialect struct {
	name   string
	driver string
	dsn    string
	// path is the SQLite database file, empty for network stores.
	path     string
	maxConns int
	schema   []string
}

// dialectFor picks a driver from the connection URL scheme.
func dialectFor(rawURL string, maxConns int) (dialect, error) {
	switch {
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		if maxConns <= 0 {
			maxConns = DefaultMaxConns
		}
		return dialect{
			name:     "postgres",
			driver:   "postgres",
			dsn:      rawURL,
			maxConns: maxConns,
			schema: []string{
				`CREATE TABLE IF NOT EXISTS todos (
            id BIGSERIAL PRIMARY KEY,
            description TEXT NOT NULL,
            done BOOLEAN NOT NULL DEFAULT FALSE
        );`,
			},
		}, nil
	case strings.HasPrefix(rawURL, "sqlite://"), strings.HasPrefix(rawURL, "sqlite:"), strings.HasPrefix(rawURL, "file:"):
		path := strings.TrimPrefix(rawURL, "sqlite://")
		path = strings.TrimPrefix(path, "sqlite:")
		path = strings.TrimPrefix(path, "file:")
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
		if path == "" {
			return dialect{}, fmt.Errorf("empty sqlite database path in %q", rawURL)
		}
		return dialect{
			name:   "sqlite",
			driver: "sqlite3",
			dsn:    fmt.Sprintf("file:%s?_busy_timeout=5000", path),
			path:   path,
			// one writer keeps SQLite free of lock contention
			maxConns: 1,
			schema: []string{
				`CREATE TABLE IF NOT EXISTS todos (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            description TEXT NOT NULL,
            done BOOLEAN NOT NULL DEFAULT 0
        );`,
			},
		}, nil
	case rawURL == "":
		return dialect{}, ErrEmptyURL
	}
	return dialect{}, fmt.Errorf("unsupported database url scheme in %q", redact(rawURL))
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// redact masks the password of a connection URL before it is logged.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	return u.Redacted()
}
