package store

import (
	"database/sql"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/migrations"
)

// DB wraps the raw sql.DB handle together with the application logger so
// repositories can share one connection pool.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies pending schema migrations to the underlying database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
