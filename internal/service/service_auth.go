package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/models"
)

type authService struct {
	sessions store.SessionRepository
	adapter  adapter.StoryAPI
	logger   *logger.Logger
}

func NewAuthService(sessions store.SessionRepository, serverAdapter adapter.StoryAPI, logger *logger.Logger) AuthService {
	return &authService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := a.adapter.Register(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	result, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	userID := result.UserID
	if userID == "" {
		// Some deployments omit userId in the login envelope; the JWT
		// subject carries it regardless.
		userID, _ = adapter.UserIDFromToken(result.Token)
	}

	session := models.Session{
		UserID:     userID,
		Name:       result.Name,
		Token:      result.Token,
		LoggedInAt: time.Now().UTC(),
	}

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	a.logger.Info().Str("user_id", session.UserID).Msg("logged in")
	return session, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrNotAuthenticated
		}
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	return session, nil
}
