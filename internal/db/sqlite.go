package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mithrel/sakura/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

// openSQLite connects via the modernc.org/sqlite driver and ensures the
// schema exists.
func openSQLite(ctx context.Context, dsn string) (*sqliteStore, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS notes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  created_time INTEGER NOT NULL,
  updated_time INTEGER NOT NULL,
  parent_id TEXT NOT NULL DEFAULT '',
  is_todo INTEGER NOT NULL DEFAULT 0,
  todo_completed INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_notes_parent_updated ON notes(parent_id, updated_time DESC);
`)
	return err
}

func (s *sqliteStore) UpsertNote(ctx context.Context, n api.Note) error {
	tagsJSON, _ := json.Marshal(n.Tags)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO notes(id, title, body, created_time, updated_time, parent_id, is_todo, todo_completed, tags)
VALUES(?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title, body=excluded.body,
  created_time=excluded.created_time, updated_time=excluded.updated_time,
  parent_id=excluded.parent_id, is_todo=excluded.is_todo,
  todo_completed=excluded.todo_completed, tags=excluded.tags`,
		n.ID, n.Title, n.Body, n.CreatedTime, n.UpdatedTime, n.ParentID, n.IsTodo, n.TodoCompleted, string(tagsJSON))
	return err
}

func (s *sqliteStore) GetNote(ctx context.Context, id string) (api.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, body, created_time, updated_time, parent_id, is_todo, todo_completed, tags FROM notes WHERE id=?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return api.Note{}, ErrNotFound
	}
	return n, err
}

func (s *sqliteStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Snapshot(ctx context.Context, parentID string) ([]api.Note, error) {
	q := `SELECT id, title, body, created_time, updated_time, parent_id, is_todo, todo_completed, tags FROM notes`
	args := []any{}
	if parentID != "" {
		q += ` WHERE parent_id=?`
		args = append(args, parentID)
	}
	q += ` ORDER BY updated_time DESC, id ASC`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (api.Note, error) {
	var n api.Note
	var tagsJSON string
	err := row.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedTime, &n.UpdatedTime, &n.ParentID, &n.IsTodo, &n.TodoCompleted, &tagsJSON)
	if err != nil {
		return api.Note{}, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &n.Tags)
	return n, nil
}
