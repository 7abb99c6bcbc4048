package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository returns the SQLite-backed single-row session store.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertSession,
		session.UserID,
		session.Name,
		session.Token,
		session.LoggedInAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.SaveSession").
			Str("user_id", session.UserID).
			Msg("failed to execute upsert for session")
		return fmt.Errorf("%w: save session: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	err := r.DB.QueryRowContext(ctx, selectSession).Scan(
		&session.UserID,
		&session.Name,
		&session.Token,
		&session.LoggedInAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).
			Str("func", "sessionRepository.GetSession").
			Msg("failed to execute query for session")
		return models.Session{}, fmt.Errorf("%w: query session: %w", ErrStoreUnavailable, err)
	}

	return session, nil
}

func (r *sessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteSession)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.ClearSession").
			Msg("failed to execute delete for session")
		return fmt.Errorf("%w: clear session: %w", ErrStoreUnavailable, err)
	}

	return nil
}
