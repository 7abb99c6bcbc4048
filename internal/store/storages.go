package store

import (
	"context"
	"fmt"

	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
)

// Storages groups all local repositories into a single value that the
// composition root passes to the service layer. The underlying SQLite handle
// is owned here; no other component touches the storage engine directly.
type Storages struct {
	// Favorites is the durable collection of bookmarked stories.
	Favorites FavoriteRepository

	// PendingSubmissions is the durable queue of captures awaiting delivery.
	PendingSubmissions PendingSubmissionRepository

	// Session holds the persisted authentication state.
	Session SessionRepository

	db *DB
}

// NewStorages initialises the local storage layer:
//  1. Opens the SQLite database at cfg.DB.DSN, creating the file on first run.
//  2. Runs pending schema migrations via [DB.Migrate] (idempotent, so repeated
//     initialisation is safe).
//  3. Wires and returns the repository set.
//
// Returns an error wrapping [ErrStoreUnavailable] if the database cannot be
// opened or migrated.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("%w: migration failed: %w", ErrStoreUnavailable, err)
	}

	return &Storages{
		Favorites:          NewFavoriteRepository(db, logger),
		PendingSubmissions: NewPendingSubmissionRepository(db, logger),
		Session:            NewSessionRepository(db, logger),
		db:                 db,
	}, nil
}

// Close releases the underlying database handle. Operations after Close fail
// until a new Storages is constructed.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
