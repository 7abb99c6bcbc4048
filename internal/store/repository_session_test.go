package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

func TestSessionRepository_SaveGetClear(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t), logger.Nop())
	ctx := context.Background()

	_, err := repo.GetSession(ctx)
	require.ErrorIs(t, err, ErrSessionNotFound)

	session := models.Session{
		UserID:     "user-yj5pc_LARC_AgK61",
		Name:       "Dinda",
		Token:      "bearer-token",
		LoggedInAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSession(ctx, session))

	got, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Name, got.Name)
	assert.Equal(t, session.Token, got.Token)

	// Saving again replaces the single session row.
	session.Token = "rotated-token"
	require.NoError(t, repo.SaveSession(ctx, session))

	got, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rotated-token", got.Token)

	require.NoError(t, repo.ClearSession(ctx))
	require.NoError(t, repo.ClearSession(ctx))

	_, err = repo.GetSession(ctx)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
