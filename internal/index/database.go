// Package index maintains the SQLite full-text search cache over the data
// directory. The index is derived data; the stores never read through it and
// a reindex rebuilds it from scratch.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Document stores recognized by the index.
const (
	StoreWiki    = "wiki"
	StoreJournal = "journal"
	StoreMeeting = "meeting"
	StoreList    = "list"
)

// ErrIndexLocked indicates another process is rebuilding the index.
var ErrIndexLocked = errors.New("index is locked for rebuild")

// Database is the SQLite search index handle.
type Database struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Open opens or creates the index at dataDir/.mystuff/index.db.
func Open(dataDir string) (*Database, error) {
	dbDir := filepath.Join(dataDir, ".mystuff")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create .mystuff directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		-- One row per indexed file
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,        -- store:relative-path
			store TEXT NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			indexed_at INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_documents_store ON documents(store);

		-- Full-text search over document content
		CREATE VIRTUAL TABLE IF NOT EXISTS fts_content USING fts5(
			doc_id,
			title,
			content,
			path UNINDEXED,
			tokenize='porter unicode61'
		);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize index schema: %w", err)
	}
	return nil
}

// SearchResult is one ranked full-text hit.
type SearchResult struct {
	DocID   string
	Store   string
	Title   string
	Path    string
	Snippet string
	Rank    float64
}

// Search runs a ranked full-text query over the index.
func (d *Database) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT
			f.doc_id,
			d.store,
			f.title,
			f.path,
			snippet(fts_content, 2, '»', '«', '...', 32) as snippet,
			bm25(fts_content) as rank
		FROM fts_content f
		JOIN documents d ON f.doc_id = d.id
		WHERE fts_content MATCH ?
		ORDER BY rank
		LIMIT ?
	`, BuildFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Store, &r.Title, &r.Path, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// SearchStore runs a ranked full-text query limited to one store.
func (d *Database) SearchStore(query, store string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT
			f.doc_id,
			d.store,
			f.title,
			f.path,
			snippet(fts_content, 2, '»', '«', '...', 32) as snippet,
			bm25(fts_content) as rank
		FROM fts_content f
		JOIN documents d ON f.doc_id = d.id
		WHERE fts_content MATCH ? AND d.store = ?
		ORDER BY rank
		LIMIT ?
	`, BuildFTSQuery(query), store, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Store, &r.Title, &r.Path, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
