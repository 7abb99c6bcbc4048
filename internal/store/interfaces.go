package store

import (
	"context"

	"github.com/storyshare/storyshare/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// FavoriteRepository is the durable collection of locally bookmarked stories,
// keyed by the remote story id.
type FavoriteRepository interface {
	// AddFavorite persists a snapshot of a story. It stamps FavoritedAt and
	// returns the story id. Fails with [ErrDuplicateKey] if a record for the
	// same id already exists.
	AddFavorite(ctx context.Context, fav models.FavoriteRecord) (string, error)

	// RemoveFavorite deletes a favorite by story id. Removing a nonexistent
	// id is not an error.
	RemoveFavorite(ctx context.Context, storyID string) error

	// ListFavorites returns a fresh slice of all favorites, optionally
	// filtered and sorted per opts.
	ListFavorites(ctx context.Context, opts models.FavoriteListOptions) ([]models.FavoriteRecord, error)

	// IsFavorite reports whether a favorite exists for the given story id.
	IsFavorite(ctx context.Context, storyID string) (bool, error)
}

// PendingSubmissionRepository is the durable queue of story captures awaiting
// delivery to the remote service. A record exists if and only if it has not
// been successfully delivered; deletion is the only "synced" signal.
type PendingSubmissionRepository interface {
	// AddPendingSubmission persists a capture, assigns the autoincrement id,
	// and stamps CreatedAt. RetryCount starts at zero and Synced at false
	// regardless of the input values. Returns the assigned id.
	AddPendingSubmission(ctx context.Context, sub models.PendingSubmission) (int64, error)

	// ListPendingSubmissions returns all queued captures. No ordering is
	// guaranteed; callers that need one must sort.
	ListPendingSubmissions(ctx context.Context) ([]models.PendingSubmission, error)

	// DeletePendingSubmission removes a capture by id. Deleting a nonexistent
	// id is not an error.
	DeletePendingSubmission(ctx context.Context, id int64) error

	// IncrementRetry atomically bumps the retry counter and stamps LastRetry,
	// returning the new count. If the record no longer exists (already synced
	// and deleted by a concurrent pass) it returns 0 with no error and does
	// not recreate the record.
	IncrementRetry(ctx context.Context, id int64) (int, error)
}

// SessionRepository persists the single authenticated session across
// restarts.
type SessionRepository interface {
	// SaveSession stores the session, replacing any previous one.
	SaveSession(ctx context.Context, session models.Session) error

	// GetSession returns the persisted session or [ErrSessionNotFound].
	GetSession(ctx context.Context) (models.Session, error)

	// ClearSession removes the persisted session. Clearing an absent session
	// is not an error.
	ClearSession(ctx context.Context) error
}
