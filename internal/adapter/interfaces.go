package adapter

import (
	"context"

	"github.com/storyshare/storyshare/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CreateStoryRequest carries everything needed for a multipart story
// creation call.
type CreateStoryRequest struct {
	Description string
	Photo       []byte
	PhotoName   string
	PhotoType   string
	Lat         *float64
	Lon         *float64

	// Token overrides the adapter-held bearer token when non-empty. The
	// reconciliation engine replays queued submissions with the token that
	// was valid at capture time.
	Token string
}

// StoryAPI is the narrow contract the application consumes from the remote
// StoryShare service. Implementations map transport and HTTP-level failures
// to the adapter's error taxonomy: [ErrUnauthorized] for authentication
// rejections, [ErrConnectivity] for unreachable-network failures, and
// [*APIError] for everything else.
type StoryAPI interface {
	// Register creates a new account.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates and stores the returned bearer token on the
	// adapter for subsequent calls.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// ListStories fetches the story feed with location data.
	ListStories(ctx context.Context) ([]models.Story, error)

	// CreateStory submits a new story as multipart form data.
	CreateStory(ctx context.Context, req CreateStoryRequest) error

	// SubscribeNotifications registers a push subscription with the service.
	SubscribeNotifications(ctx context.Context, sub models.PushSubscription) error

	// UnsubscribeNotifications removes a push subscription by endpoint.
	UnsubscribeNotifications(ctx context.Context, endpoint string) error

	// Ping reports whether the service is reachable at all. Any HTTP
	// response, including an error status, counts as reachable; only a
	// transport-level failure returns an error.
	Ping(ctx context.Context) error

	// SetToken replaces the adapter-held bearer token.
	SetToken(token string)

	// Token returns the adapter-held bearer token, or "" when logged out.
	Token() string
}
