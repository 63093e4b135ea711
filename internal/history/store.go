// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists download records to a SQLite database so past
// runs can be inspected with `sitegrab history`. Only download outcomes
// are stored; file contents are never re-read.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// Store manages the download history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Path, creating the
// schema and parent directories as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			filename TEXT,
			path TEXT,
			domain TEXT,
			extension TEXT,
			size INTEGER NOT NULL DEFAULT 0,
			content_type TEXT,
			status TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_domain ON downloads(domain)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one download attempt to the database.
func (s *Store) Record(ctx context.Context, d types.Download) error {
	when := d.Time
	if when.IsZero() {
		when = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads
			(url, filename, path, domain, extension, size, content_type, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.URL, d.Filename, d.Path, d.Domain, d.Extension,
		d.Size, d.ContentType, string(d.Status), d.Error, when.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting download record: %w", err)
	}
	return nil
}

// TaggedRecorder stamps the originating search's domain and extension
// onto each record before insertion.
type TaggedRecorder struct {
	store     *Store
	domain    string
	extension string
}

// Tagged returns a recorder bound to a domain and extension.
func (s *Store) Tagged(domain, extension string) *TaggedRecorder {
	return &TaggedRecorder{store: s, domain: domain, extension: extension}
}

// Record implements the download recorder contract.
func (t *TaggedRecorder) Record(ctx context.Context, d types.Download) error {
	d.Domain = t.domain
	d.Extension = t.extension
	return t.store.Record(ctx, d)
}

// ListOptions holds filters for history queries.
type ListOptions struct {
	// Domain filters by the search domain that discovered the URL.
	Domain string

	// Extension filters by the searched extension.
	Extension string

	// Status filters by attempt outcome.
	Status types.DownloadStatus

	// Limit caps the number of rows. Zero uses the store default.
	Limit int
}

// List returns download records matching opts, most recent first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Download, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		conditions []string
		args       []any
	)
	if opts.Domain != "" {
		conditions = append(conditions, "domain = ?")
		args = append(args, opts.Domain)
	}
	if opts.Extension != "" {
		conditions = append(conditions, "extension = ?")
		args = append(args, opts.Extension)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opts.Status))
	}

	query := `SELECT url, filename, path, domain, extension, size, content_type, status, error, created_at
		FROM downloads`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	var downloads []types.Download
	for rows.Next() {
		var (
			d       types.Download
			status  string
			created string
		)
		if err := rows.Scan(&d.URL, &d.Filename, &d.Path, &d.Domain, &d.Extension,
			&d.Size, &d.ContentType, &status, &d.Error, &created); err != nil {
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		d.Status = types.DownloadStatus(status)
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			d.Time = t
		}
		downloads = append(downloads, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating download rows: %w", err)
	}
	return downloads, nil
}
