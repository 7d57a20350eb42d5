package trends

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/five82/marquee/internal/catalog"
)

// SQLite is the on-disk trend store.
// Thread-safety: all methods are safe for concurrent use via the internal mutex.
type SQLite struct {
	db        *sql.DB
	mu        sync.RWMutex
	imageBase string
	now       func() time.Time
}

// OpenSQLite opens (or creates) the trend database at dbPath. ":memory:" gives a
// private in-memory database. imageBase prefixes poster paths when entries are
// created.
func OpenSQLite(dbPath, imageBase string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A second pooled connection to ":memory:" would see an empty database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLite{db: db, imageBase: imageBase, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id TEXT PRIMARY KEY,
		search_term TEXT NOT NULL UNIQUE,
		count INTEGER NOT NULL DEFAULT 1,
		movie_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		poster_url TEXT,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_searches_count ON searches(count DESC, updated_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// RecordSearch counts one more search for query. The first search of a term
// creates its entry from movie; later searches only bump the count.
func (s *SQLite) RecordSearch(ctx context.Context, query string, movie catalog.Movie) error {
	term := normalizeTerm(query)
	if term == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, search_term, count, movie_id, title, poster_url, updated_at)
		VALUES (?, ?, 1, ?, ?, ?, ?)
		ON CONFLICT(search_term) DO UPDATE SET
			count = searches.count + 1,
			updated_at = excluded.updated_at
	`,
		uuid.NewString(),
		term,
		movie.ID,
		movie.Title,
		movie.PosterURL(s.imageBase),
		s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record search %q: %w", term, err)
	}
	return nil
}

// Top returns up to limit entries, most searched first.
func (s *SQLite) Top(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, search_term, count, movie_id, title, COALESCE(poster_url, ''), updated_at
		FROM searches
		ORDER BY count DESC, updated_at DESC, search_term ASC
		LIMIT ?
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.ID, &e.SearchTerm, &e.Count, &e.MovieID, &e.Title, &e.PosterURL, &updated); err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending: %w", err)
	}
	return entries, nil
}
