package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

type pendingSubmissionRepository struct {
	*DB
	logger *logger.Logger
}

// NewPendingSubmissionRepository returns the SQLite-backed queue of story
// captures awaiting delivery.
func NewPendingSubmissionRepository(db *DB, logger *logger.Logger) PendingSubmissionRepository {
	return &pendingSubmissionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *pendingSubmissionRepository) AddPendingSubmission(ctx context.Context, sub models.PendingSubmission) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, insertPendingSubmission,
		sub.Description,
		sub.PhotoPayload,
		sub.PhotoName,
		sub.PhotoType,
		sub.Lat,
		sub.Lon,
		sub.AuthToken,
		time.Now().UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.AddPendingSubmission").
			Msg("failed to execute insert for pending submission")
		return 0, fmt.Errorf("%w: insert pending submission: %w", ErrStoreUnavailable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.AddPendingSubmission").
			Msg("failed to get assigned id for pending submission")
		return 0, fmt.Errorf("%w: pending submission id: %w", ErrStoreUnavailable, err)
	}

	return id, nil
}

func (r *pendingSubmissionRepository) ListPendingSubmissions(ctx context.Context) ([]models.PendingSubmission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectPendingSubmissions)
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.ListPendingSubmissions").
			Msg("failed to execute query for pending submissions")
		return nil, fmt.Errorf("%w: query pending submissions: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var subs []models.PendingSubmission

	for rows.Next() {
		var (
			sub       models.PendingSubmission
			lat, lon  sql.NullFloat64
			lastRetry sql.NullTime
		)

		scanErr := rows.Scan(
			&sub.ID,
			&sub.Description,
			&sub.PhotoPayload,
			&sub.PhotoName,
			&sub.PhotoType,
			&lat,
			&lon,
			&sub.AuthToken,
			&sub.CreatedAt,
			&sub.Synced,
			&sub.RetryCount,
			&lastRetry,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "pendingSubmissionRepository.ListPendingSubmissions").
				Msg("failed to scan pending submission row")
			return nil, fmt.Errorf("scan pending submission row: %w", scanErr)
		}

		if lat.Valid {
			sub.Lat = &lat.Float64
		}
		if lon.Valid {
			sub.Lon = &lon.Float64
		}
		if lastRetry.Valid {
			sub.LastRetry = &lastRetry.Time
		}

		subs = append(subs, sub)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pendingSubmissionRepository.ListPendingSubmissions").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("iterate pending submission rows: %w", rowsErr)
	}

	return subs, nil
}

func (r *pendingSubmissionRepository) DeletePendingSubmission(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deletePendingSubmission, id)
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.DeletePendingSubmission").
			Int64("id", id).
			Msg("failed to execute delete for pending submission")
		return fmt.Errorf("%w: delete pending submission (id=%d): %w", ErrStoreUnavailable, id, err)
	}

	return nil
}

func (r *pendingSubmissionRepository) IncrementRetry(ctx context.Context, id int64) (int, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, incrementPendingRetry, time.Now().UTC(), id)
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.IncrementRetry").
			Int64("id", id).
			Msg("failed to execute retry increment for pending submission")
		return 0, fmt.Errorf("%w: increment retry (id=%d): %w", ErrStoreUnavailable, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "pendingSubmissionRepository.IncrementRetry").
			Int64("id", id).
			Msg("failed to get rows affected after retry increment")
		return 0, fmt.Errorf("%w: increment retry rows affected (id=%d): %w", ErrStoreUnavailable, id, err)
	}

	// The record was deleted by a concurrent pass that already synced it.
	// Reporting zero keeps the increment a safe no-op instead of
	// resurrecting the record.
	if rowsAffected == 0 {
		log.Debug().
			Str("func", "pendingSubmissionRepository.IncrementRetry").
			Int64("id", id).
			Msg("no rows affected during retry increment: record already removed")
		return 0, nil
	}

	var count int
	err = r.DB.QueryRowContext(ctx, selectPendingRetryCount, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Err(err).
			Str("func", "pendingSubmissionRepository.IncrementRetry").
			Int64("id", id).
			Msg("failed to read retry count after increment")
		return 0, fmt.Errorf("%w: read retry count (id=%d): %w", ErrStoreUnavailable, id, err)
	}

	return count, nil
}
