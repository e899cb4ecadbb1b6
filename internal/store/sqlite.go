package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abhii242004/applymail/internal/model"
)

// SQLiteStore keeps finished drafts in a SQLite database so they can be
// listed and reviewed later.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements model.DraftStore.
var _ model.DraftStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the drafts table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS drafts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		job_excerpt TEXT NOT NULL,
		model       TEXT NOT NULL,
		body        TEXT NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save records a finished draft and returns its assigned ID.
func (s *SQLiteStore) Save(email model.Email) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO drafts (job_excerpt, model, body, created_at) VALUES (?, ?, ?, ?)",
		email.JobExcerpt, email.Model, email.Body, email.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("saving draft: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("saving draft: %w", err)
	}
	return id, nil
}

// List returns the most recent drafts, newest first, up to limit.
// A limit of zero or less returns all drafts.
func (s *SQLiteStore) List(limit int) ([]model.Email, error) {
	query := "SELECT id, job_excerpt, model, body, created_at FROM drafts ORDER BY created_at DESC, id DESC"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.Email
	for rows.Next() {
		var e model.Email
		if err := rows.Scan(&e.ID, &e.JobExcerpt, &e.Model, &e.Body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft row: %w", err)
		}
		drafts = append(drafts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return drafts, nil
}

// Get returns the draft with the given ID.
func (s *SQLiteStore) Get(id int64) (model.Email, error) {
	var e model.Email
	err := s.db.QueryRow(
		"SELECT id, job_excerpt, model, body, created_at FROM drafts WHERE id = ?", id,
	).Scan(&e.ID, &e.JobExcerpt, &e.Model, &e.Body, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Email{}, fmt.Errorf("draft %d not found", id)
	}
	if err != nil {
		return model.Email{}, fmt.Errorf("getting draft %d: %w", id, err)
	}
	return e, nil
}

// Cleanup deletes drafts older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM drafts WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up drafts older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
