package stubserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

// The stub must be a drop-in for the real service, so the tests drive it
// through the production adapter instead of raw HTTP calls.
func newTestClient(t *testing.T) adapter.StoryAPI {
	t.Helper()

	srv := New("test-secret", logger.Nop())
	ts := httptest.NewServer(srv.Init())
	t.Cleanup(ts.Close)

	return adapter.NewHTTPStoryAPI(config.ClientAPI{
		BaseURL:        ts.URL + "/v1",
		RequestTimeout: 5 * time.Second,
	}, nil, logger.Nop())
}

func TestStubServer_FullStoryFlow(t *testing.T) {
	api := newTestClient(t)
	ctx := context.Background()

	err := api.Register(ctx, models.RegisterRequest{Name: "Dinda", Email: "dinda@example.com", Password: "rahasia-123"})
	require.NoError(t, err)

	result, err := api.Login(ctx, models.LoginRequest{Email: "dinda@example.com", Password: "rahasia-123"})
	require.NoError(t, err)
	assert.Equal(t, "Dinda", result.Name)
	assert.NotEmpty(t, result.Token)

	stories, err := api.ListStories(ctx)
	require.NoError(t, err)
	seeded := len(stories)
	require.GreaterOrEqual(t, seeded, 2)

	lat, lon := -6.2, 106.8
	err = api.CreateStory(ctx, adapter.CreateStoryRequest{
		Description: "Cerita pertama dari klien",
		Photo:       []byte("jpeg-bytes"),
		PhotoName:   "cerita.jpg",
		PhotoType:   "image/jpeg",
		Lat:         &lat,
		Lon:         &lon,
	})
	require.NoError(t, err)

	stories, err = api.ListStories(ctx)
	require.NoError(t, err)
	assert.Len(t, stories, seeded+1)
}

func TestStubServer_RejectsUnauthenticated(t *testing.T) {
	api := newTestClient(t)

	_, err := api.ListStories(context.Background())
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestStubServer_RejectsDuplicateEmail(t *testing.T) {
	api := newTestClient(t)
	ctx := context.Background()

	req := models.RegisterRequest{Name: "Dinda", Email: "dinda@example.com", Password: "rahasia-123"}
	require.NoError(t, api.Register(ctx, req))

	err := api.Register(ctx, req)
	require.Error(t, err)

	var apiErr *adapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email is already taken", apiErr.Message)
}

func TestStubServer_RejectsWrongPassword(t *testing.T) {
	api := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, api.Register(ctx, models.RegisterRequest{Name: "Dinda", Email: "dinda@example.com", Password: "rahasia-123"}))

	_, err := api.Login(ctx, models.LoginRequest{Email: "dinda@example.com", Password: "salah-semua"})
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestStubServer_PushSubscriptionLifecycle(t *testing.T) {
	api := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, api.Register(ctx, models.RegisterRequest{Name: "Dinda", Email: "dinda@example.com", Password: "rahasia-123"}))
	_, err := api.Login(ctx, models.LoginRequest{Email: "dinda@example.com", Password: "rahasia-123"})
	require.NoError(t, err)

	sub := models.PushSubscription{
		Endpoint: "https://push.example.com/abc",
		Keys:     models.SubscriptionKeys{P256DH: "p256dh-key", Auth: "auth-key"},
	}

	require.NoError(t, api.SubscribeNotifications(ctx, sub))
	require.NoError(t, api.UnsubscribeNotifications(ctx, sub.Endpoint))
}

func TestStubServer_PingWithoutAuth(t *testing.T) {
	api := newTestClient(t)

	// Any HTTP answer counts as reachable, 401 included.
	require.NoError(t, api.Ping(context.Background()))
}
