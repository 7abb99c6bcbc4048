// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

// Package service holds the application's business logic: authentication
// with a persisted session, story browsing and submission with offline
// capture, the local favorites collection, and the background reconciliation
// engine that drains queued submissions once connectivity returns.
package service

import (
	"context"
	"time"

	"github.com/storyshare/storyshare/models"
)

// AuthService manages the single authenticated session. The session is
// persisted locally so a restart does not require a fresh login.
type AuthService interface {
	// Register creates a new account on the remote service.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates against the remote service, installs the bearer
	// token on the adapter, and persists the session.
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// Logout clears the persisted session and the adapter-held token.
	Logout(ctx context.Context) error

	// RestoreSession loads the persisted session, if any, and installs its
	// token on the adapter. Returns [ErrNotAuthenticated] when no session
	// is stored.
	RestoreSession(ctx context.Context) (models.Session, error)
}

// SubmitOutcome tells the caller whether a story reached the remote service
// immediately or was captured locally for later delivery. Both are success
// from the user's point of view, with different confirmation messages.
type SubmitOutcome struct {
	Delivered bool
	PendingID int64
	Message   string
}

// StoryService covers the story feed and the submission flow.
type StoryService interface {
	// ListStories fetches the story feed. Responses travel through the
	// caching transport, so a recently seen feed is available offline.
	ListStories(ctx context.Context) ([]models.Story, error)

	// SubmitStory validates the submission and sends it to the remote
	// service. On a connectivity failure the submission is persisted as a
	// pending record instead and a background drain is requested; this is
	// reported as a queued success, not an error. Validation and
	// authentication failures propagate.
	SubmitStory(ctx context.Context, sub models.StorySubmission) (SubmitOutcome, error)
}

// FavoritesService manages the durable local collection of bookmarked
// stories.
type FavoritesService interface {
	// Add stores a snapshot of the story. Returns [ErrAlreadyFavorite] when
	// the story is already bookmarked.
	Add(ctx context.Context, story models.Story) error

	// Remove deletes a favorite by story id. Idempotent.
	Remove(ctx context.Context, storyID string) error

	// List returns the favorites, optionally filtered and sorted.
	List(ctx context.Context, opts models.FavoriteListOptions) ([]models.FavoriteRecord, error)

	// IsFavorite reports whether the story is bookmarked.
	IsFavorite(ctx context.Context, storyID string) (bool, error)
}

// DrainReport summarises a single reconciliation pass.
type DrainReport struct {
	// Synced counts submissions acknowledged by the remote service and
	// removed from the queue.
	Synced int
	// Failed counts submissions left in the queue for a later pass.
	Failed int
	// Abandoned counts submissions dropped after exhausting the retry
	// budget on authentication failures.
	Abandoned int
	// Skipped is true when the pass did not run because another one was
	// already in progress.
	Skipped bool
}

// SyncService drains the pending submission queue against the remote
// service.
type SyncService interface {
	// Drain replays every queued submission strictly sequentially. Each
	// record's outcome is independent: delivered records are deleted,
	// failed ones stay for the next pass with their retry counter bumped.
	// One summary notification is emitted when at least one record synced.
	// A Drain while another is in progress returns immediately with
	// Skipped set.
	Drain(ctx context.Context) (DrainReport, error)

	// Pending returns the queued submissions awaiting delivery.
	Pending(ctx context.Context) ([]models.PendingSubmission, error)
}

// SyncScheduler requests that a reconciliation pass run soon. Trigger never
// blocks and is a no-op when no background job is running; callers fall back
// on the startup drain or the next ticker pass.
type SyncScheduler interface {
	Trigger()
}

// SyncJob is the background reconciliation loop: a ticker-driven drain that
// can also be woken early through Trigger.
type SyncJob interface {
	SyncScheduler

	// Start launches the background goroutine. It stops any previously
	// running job first. The goroutine exits when ctx is cancelled or Stop
	// is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutine and blocks until it has fully
	// exited. Safe to call when the job is not running.
	Stop()
}
