// Package index stores analyzed components in a SQLite FTS5 table and ranks them for a query.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/fusix/intentsrc/intentsrc/component"
	"github.com/fusix/intentsrc/intentsrc/textproc"
)

// FileName is the database file created in the index directory.
const FileName = "index.db"

// MaxHits caps the number of search results.
const MaxHits = 5000

var ErrClosed = errors.New("index closed")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS components (
		path TEXT PRIMARY KEY,
		file_path TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_components_file_path ON components(file_path)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS components_fts USING fts5(
		path UNINDEXED,
		terms
	)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",
}

// Index is safe for concurrent use.
type Index struct {
	dir      string
	analyzer *textproc.Analyzer

	mu sync.Mutex
	db *sql.DB
}

// Open creates dir if needed and opens or creates the database in it.
// Content and queries are analyzed with the analyzer for source.
func Open(dir string, source textproc.Source) (*Index, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("could not create index dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)
	for _, q := range append(append([]string{}, pragmas...), schema...) {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize index: %w", err)
		}
	}
	return &Index{dir: dir, analyzer: textproc.For(source), db: db}, nil
}

func (s *Index) Dir() string {
	return s.dir
}

func (s *Index) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Close releases the database. Calling it more than once is a no-op.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// WriteAll stores every component of set, replacing components with the same path.
func (s *Index) WriteAll(ctx context.Context, set component.Set) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO components (path, file_path, start_line, end_line) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer upsert.Close()
	del, err := tx.PrepareContext(ctx, `DELETE FROM components_fts WHERE path = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer del.Close()
	ins, err := tx.PrepareContext(ctx, `INSERT INTO components_fts (path, terms) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer ins.Close()

	for _, c := range set.Slice() {
		if _, err := upsert.ExecContext(ctx, c.Path(), c.FilePath(), c.StartLine(), c.EndLine()); err != nil {
			return fmt.Errorf("failed to write component %s: %w", c.Path(), err)
		}
		if _, err := del.ExecContext(ctx, c.Path()); err != nil {
			return fmt.Errorf("failed to write component %s: %w", c.Path(), err)
		}
		if _, err := ins.ExecContext(ctx, c.Path(), s.analyzer.Terms(c.Content())); err != nil {
			return fmt.Errorf("failed to write component %s: %w", c.Path(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// MatchExpression returns the FTS5 expression matching any analyzed term of query,
// empty when query has no terms.
func (s *Index) MatchExpression(query string) string {
	var quoted []string
	seen := map[string]bool{}
	for _, t := range s.analyzer.Tokens(query) {
		if seen[t] {
			continue
		}
		seen[t] = true
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " OR ")
}

// Search returns the components matching any term of query, best first.
// Results carry their 1-based rank in SearchPosition and no content.
func (s *Index) Search(ctx context.Context, query string) ([]*component.Component, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	expr := s.MatchExpression(query)
	if expr == "" {
		return nil, nil
	}
	rows, err := db.QueryContext(ctx, `
		SELECT c.path, c.start_line, c.end_line
		FROM components_fts f
		JOIN components c ON c.path = f.path
		WHERE components_fts MATCH ?
		ORDER BY bm25(components_fts), c.path
		LIMIT ?`, expr, MaxHits)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var res []*component.Component
	for rows.Next() {
		var path string
		var start, end int
		if err := rows.Scan(&path, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		c := component.NewWithRange(path, "", start, end)
		c.SetSearchPosition(len(res) + 1)
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return res, nil
}

// Count returns the number of stored components.
func (s *Index) Count(ctx context.Context) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}

// DeleteAll removes every component and all metadata.
func (s *Index) DeleteAll(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	for _, q := range []string{`DELETE FROM components`, `DELETE FROM components_fts`, `DELETE FROM meta`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Index) SetMeta(ctx context.Context, key, value string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %s: %w", key, err)
	}
	return nil
}

// Meta returns the value stored for key, false when not set.
func (s *Index) Meta(ctx context.Context, key string) (string, bool, error) {
	db, err := s.conn()
	if err != nil {
		return "", false, err
	}
	var v string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read meta %s: %w", key, err)
	}
	return v, true, nil
}
