package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/mock"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/models"
)

func TestFavoritesService_Add_SnapshotsTheStory(t *testing.T) {
	ctrl := gomock.NewController(t)
	favorites := mock.NewMockFavoriteRepository(ctrl)

	story := models.Story{ID: "story-1", Name: "Dinda", Description: "Senja di pelabuhan", PhotoURL: "https://cdn.example.com/1.jpg"}

	favorites.EXPECT().AddFavorite(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.FavoriteRecord) (string, error) {
			assert.Equal(t, story.ID, rec.ID)
			assert.Equal(t, story.Description, rec.Description)
			assert.Equal(t, story.PhotoURL, rec.PhotoURL)
			return rec.ID, nil
		})

	svc := NewFavoritesService(favorites, logger.Nop())
	require.NoError(t, svc.Add(context.Background(), story))
}

func TestFavoritesService_Add_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	favorites := mock.NewMockFavoriteRepository(ctrl)

	favorites.EXPECT().AddFavorite(gomock.Any(), gomock.Any()).Return("", store.ErrDuplicateKey)

	svc := NewFavoritesService(favorites, logger.Nop())
	err := svc.Add(context.Background(), models.Story{ID: "story-1"})
	require.ErrorIs(t, err, ErrAlreadyFavorite)
}

func TestFavoritesService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	favorites := mock.NewMockFavoriteRepository(ctrl)

	opts := models.FavoriteListOptions{Search: "senja", SortBy: models.FavoriteSortByName}
	want := []models.FavoriteRecord{{ID: "story-1"}}
	favorites.EXPECT().ListFavorites(gomock.Any(), opts).Return(want, nil)

	svc := NewFavoritesService(favorites, logger.Nop())
	got, err := svc.List(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFavoritesService_RemoveAndCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	favorites := mock.NewMockFavoriteRepository(ctrl)

	favorites.EXPECT().RemoveFavorite(gomock.Any(), "story-1").Return(nil)
	favorites.EXPECT().IsFavorite(gomock.Any(), "story-1").Return(false, nil)

	svc := NewFavoritesService(favorites, logger.Nop())
	require.NoError(t, svc.Remove(context.Background(), "story-1"))

	ok, err := svc.IsFavorite(context.Background(), "story-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
