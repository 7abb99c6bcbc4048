package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/models"
)

type favoritesService struct {
	favorites store.FavoriteRepository
	logger    *logger.Logger
}

func NewFavoritesService(favorites store.FavoriteRepository, logger *logger.Logger) FavoritesService {
	return &favoritesService{favorites: favorites, logger: logger}
}

func (f *favoritesService) Add(ctx context.Context, story models.Story) error {
	_, err := f.favorites.AddFavorite(ctx, models.NewFavoriteRecord(story))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return fmt.Errorf("%w: %s", ErrAlreadyFavorite, story.ID)
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (f *favoritesService) Remove(ctx context.Context, storyID string) error {
	if err := f.favorites.RemoveFavorite(ctx, storyID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (f *favoritesService) List(ctx context.Context, opts models.FavoriteListOptions) ([]models.FavoriteRecord, error) {
	return f.favorites.ListFavorites(ctx, opts)
}

func (f *favoritesService) IsFavorite(ctx context.Context, storyID string) (bool, error) {
	return f.favorites.IsFavorite(ctx, storyID)
}
