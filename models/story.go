package models

import "time"

// Story is a single post in the StoryShare feed as returned by the remote
// service: description text, a hosted photo, and optional geocoordinates.
type Story struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FavoriteRecord is a locally bookmarked story. The story fields are a
// denormalized snapshot taken at favoriting time and are never re-fetched
// from the remote service.
type FavoriteRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// NewFavoriteRecord snapshots a story into a favorite. FavoritedAt is
// stamped by the repository at insertion time.
func NewFavoriteRecord(story Story) FavoriteRecord {
	return FavoriteRecord{
		ID:          story.ID,
		Name:        story.Name,
		Description: story.Description,
		PhotoURL:    story.PhotoURL,
		Lat:         story.Lat,
		Lon:         story.Lon,
		CreatedAt:   story.CreatedAt,
	}
}

// FavoriteSortBy selects the field favorites are ordered by.
type FavoriteSortBy string

// FavoriteSortOrder selects the direction favorites are ordered in.
type FavoriteSortOrder string

const (
	FavoriteSortByName FavoriteSortBy = "name"
	FavoriteSortByDate FavoriteSortBy = "date"

	FavoriteSortAsc  FavoriteSortOrder = "asc"
	FavoriteSortDesc FavoriteSortOrder = "desc"
)

// FavoriteListOptions narrows and orders a favorites listing. The zero value
// lists everything in storage order.
type FavoriteListOptions struct {
	// Search is a case-insensitive substring matched against name and
	// description. Empty means no filtering.
	Search string

	// SortBy orders results by name or by favorited timestamp. Empty means
	// no explicit ordering.
	SortBy FavoriteSortBy

	// SortOrder is ascending when empty.
	SortOrder FavoriteSortOrder
}
