package db

import (
	"context"
	"errors"
	"strings"

	"github.com/mithrel/sakura/pkg/api"
)

// Store persists notes and serves the snapshots the search engine runs
// over. The engine never touches the store mid-search: callers fetch one
// snapshot per request.
type Store interface {
	UpsertNote(ctx context.Context, n api.Note) error
	GetNote(ctx context.Context, id string) (api.Note, error)
	DeleteNote(ctx context.Context, id string) error
	// Snapshot returns all notes, or only those under parentID when it is
	// non-empty, ordered by updated_time descending.
	Snapshot(ctx context.Context, parentID string) ([]api.Note, error)
	Close() error
}

var ErrNotFound = errors.New("not found")

// Open returns a Store based on a URL (sqlite://path, mem://).
func Open(ctx context.Context, url string) (Store, error) {
	if strings.HasPrefix(url, "mem://") {
		return NewMemStore(), nil
	}
	return openSQLite(ctx, url)
}
