package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

type favoriteRepository struct {
	*DB
	logger *logger.Logger
}

// NewFavoriteRepository returns the SQLite-backed favorites collection.
func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	return &favoriteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, fav models.FavoriteRecord) (string, error) {
	log := logger.FromContext(ctx)

	fav.FavoritedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctx, insertFavorite,
		fav.ID,
		fav.Name,
		fav.Description,
		fav.PhotoURL,
		fav.Lat,
		fav.Lon,
		fav.CreatedAt,
		fav.FavoritedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", fmt.Errorf("favorite %s: %w", fav.ID, ErrDuplicateKey)
		}
		log.Err(err).
			Str("func", "favoriteRepository.AddFavorite").
			Str("story_id", fav.ID).
			Msg("failed to execute insert for favorite")
		return "", fmt.Errorf("%w: insert favorite (id=%s): %w", ErrStoreUnavailable, fav.ID, err)
	}

	return fav.ID, nil
}

func (r *favoriteRepository) RemoveFavorite(ctx context.Context, storyID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteFavorite, storyID)
	if err != nil {
		log.Err(err).
			Str("func", "favoriteRepository.RemoveFavorite").
			Str("story_id", storyID).
			Msg("failed to execute delete for favorite")
		return fmt.Errorf("%w: delete favorite (id=%s): %w", ErrStoreUnavailable, storyID, err)
	}

	return nil
}

func (r *favoriteRepository) ListFavorites(ctx context.Context, opts models.FavoriteListOptions) ([]models.FavoriteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFavoritesQuery(opts)
	if err != nil {
		log.Err(err).
			Str("func", "favoriteRepository.ListFavorites").
			Msg("failed to build favorites query")
		return nil, fmt.Errorf("build favorites query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "favoriteRepository.ListFavorites").
			Msg("failed to execute query for favorites")
		return nil, fmt.Errorf("%w: query favorites: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	favorites := make([]models.FavoriteRecord, 0)

	for rows.Next() {
		var (
			fav      models.FavoriteRecord
			lat, lon sql.NullFloat64
		)

		scanErr := rows.Scan(
			&fav.ID,
			&fav.Name,
			&fav.Description,
			&fav.PhotoURL,
			&lat,
			&lon,
			&fav.CreatedAt,
			&fav.FavoritedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "favoriteRepository.ListFavorites").
				Msg("failed to scan favorite row")
			return nil, fmt.Errorf("scan favorite row: %w", scanErr)
		}

		if lat.Valid {
			fav.Lat = &lat.Float64
		}
		if lon.Valid {
			fav.Lon = &lon.Float64
		}

		favorites = append(favorites, fav)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "favoriteRepository.ListFavorites").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("iterate favorite rows: %w", rowsErr)
	}

	return favorites, nil
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, storyID string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	err := r.DB.QueryRowContext(ctx, existsFavorite, storyID).Scan(&exists)
	if err != nil {
		log.Err(err).
			Str("func", "favoriteRepository.IsFavorite").
			Str("story_id", storyID).
			Msg("failed to execute existence check for favorite")
		return false, fmt.Errorf("%w: check favorite (id=%s): %w", ErrStoreUnavailable, storyID, err)
	}

	return exists, nil
}

// buildListFavoritesQuery assembles the filtered and sorted listing query.
// Filtering is a case-insensitive substring match over name and description;
// sorting is by name (lexicographic) or by favorited timestamp.
func buildListFavoritesQuery(opts models.FavoriteListOptions) (string, []any, error) {
	builder := sq.Select(
		"id",
		"name",
		"description",
		"photo_url",
		"lat",
		"lon",
		"created_at",
		"favorited_at",
	).From("favorites")

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"LOWER(name)": pattern},
			sq.Like{"LOWER(description)": pattern},
		})
	}

	direction := "ASC"
	if opts.SortOrder == models.FavoriteSortDesc {
		direction = "DESC"
	}

	switch opts.SortBy {
	case models.FavoriteSortByName:
		builder = builder.OrderBy("LOWER(name) " + direction)
	case models.FavoriteSortByDate:
		builder = builder.OrderBy("favorited_at " + direction)
	}

	return builder.ToSql()
}
