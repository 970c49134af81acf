// Package history persists one row per completed analysis in a local sqlite
// file. It is an optional capability; the server runs without it.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded analysis.
type Entry struct {
	ID          uuid.UUID
	Filename    string
	Source      string // "llm" or "heuristic"
	Titles      []string
	Scores      map[string]float64
	Explanation string
	CreatedAt   time.Time
}

// ErrNotFound is returned when no entry matches the requested ID.
var ErrNotFound = errors.New("history entry not found")

type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS analysis_history (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	source      TEXT NOT NULL,
	titles      TEXT NOT NULL,
	scores      TEXT NOT NULL,
	explanation TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_history_created_at
	ON analysis_history (created_at DESC);`

// Open opens (creating if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts an entry, assigning ID and CreatedAt when unset.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	titles, err := json.Marshal(e.Titles)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal titles: %w", err)
	}
	scores, err := json.Marshal(e.Scores)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_history (id, filename, source, titles, scores, explanation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Filename, e.Source, string(titles), string(scores), e.Explanation, e.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	return e, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, source, titles, scores, explanation, created_at
		 FROM analysis_history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID returns a single entry or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, source, titles, scores, explanation, created_at
		 FROM analysis_history WHERE id = ?`, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e          Entry
		idStr      string
		titlesJSON string
		scoresJSON string
	)
	if err := sc.Scan(&idStr, &e.Filename, &e.Source, &titlesJSON, &scoresJSON, &e.Explanation, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Entry{}, fmt.Errorf("parse entry id: %w", err)
	}
	e.ID = id
	if err := json.Unmarshal([]byte(titlesJSON), &e.Titles); err != nil {
		return Entry{}, fmt.Errorf("unmarshal titles: %w", err)
	}
	if err := json.Unmarshal([]byte(scoresJSON), &e.Scores); err != nil {
		return Entry{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return e, nil
}
