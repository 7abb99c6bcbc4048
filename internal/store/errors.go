package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateKey is returned when inserting a favorite for a story id
	// that already has a FavoriteRecord. There is no idempotent upsert: the
	// caller must remove the existing record first.
	ErrDuplicateKey = errors.New("record already exists")

	// ErrStoreUnavailable is returned when the local persistence layer failed
	// to open, read, or write. Callers must treat this as "offline capture
	// degraded" and surface a generic failure instead of crashing the
	// submission flow.
	ErrStoreUnavailable = errors.New("local store unavailable")

	// ErrSessionNotFound is returned when no persisted session exists.
	ErrSessionNotFound = errors.New("local session not found")
)
