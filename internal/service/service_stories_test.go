package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/mock"
	"github.com/storyshare/storyshare/internal/validators"
	"github.com/storyshare/storyshare/models"
)

type triggerRecorder struct {
	calls int
}

func (r *triggerRecorder) Trigger() { r.calls++ }

func testSubmission() models.StorySubmission {
	lat, lon := -7.95, 112.61
	return models.StorySubmission{
		Description: "Kabut pagi di kaki gunung",
		Photo:       []byte("jpeg-bytes"),
		PhotoName:   "kabut.jpg",
		PhotoType:   "image/jpeg",
		Lat:         &lat,
		Lon:         &lon,
	}
}

func newStoryServiceForTest(t *testing.T) (*mock.MockPendingSubmissionRepository, *mock.MockStoryAPI, *triggerRecorder, StoryService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	pending := mock.NewMockPendingSubmissionRepository(ctrl)
	api := mock.NewMockStoryAPI(ctrl)
	recorder := &triggerRecorder{}

	svc := NewStoryService(pending, api, validators.NewSubmissionValidator(), recorder, logger.Nop())
	return pending, api, recorder, svc
}

func TestStoryService_SubmitStory_Delivered(t *testing.T) {
	_, api, recorder, svc := newStoryServiceForTest(t)

	sub := testSubmission()
	api.EXPECT().CreateStory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req adapter.CreateStoryRequest) error {
			assert.Equal(t, sub.Description, req.Description)
			assert.Equal(t, sub.Photo, req.Photo)
			assert.Empty(t, req.Token, "live submissions use the adapter-held token")
			return nil
		})

	outcome, err := svc.SubmitStory(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, outcome.Delivered)
	assert.Equal(t, MsgStoryDelivered, outcome.Message)
	assert.Zero(t, recorder.calls)
}

func TestStoryService_SubmitStory_CapturedWhenOffline(t *testing.T) {
	pending, api, recorder, svc := newStoryServiceForTest(t)

	sub := testSubmission()

	api.EXPECT().CreateStory(gomock.Any(), gomock.Any()).Return(adapter.ErrConnectivity)
	api.EXPECT().Token().Return("captured-token")

	pending.EXPECT().AddPendingSubmission(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.PendingSubmission) (int64, error) {
			assert.Equal(t, sub.Description, rec.Description)
			assert.Equal(t, "captured-token", rec.AuthToken)
			assert.Equal(t, sub.Lat, rec.Lat)

			photo, err := rec.DecodePhoto()
			require.NoError(t, err)
			assert.Equal(t, sub.Photo, photo)
			return 7, nil
		})

	outcome, err := svc.SubmitStory(context.Background(), sub)
	require.NoError(t, err, "offline capture is a success, not an error")
	assert.False(t, outcome.Delivered)
	assert.Equal(t, int64(7), outcome.PendingID)
	assert.Equal(t, MsgStoryQueued, outcome.Message)
	assert.Equal(t, 1, recorder.calls, "capture must request a background drain")
}

func TestStoryService_SubmitStory_ValidationFailureSkipsNetwork(t *testing.T) {
	_, _, recorder, svc := newStoryServiceForTest(t)

	sub := testSubmission()
	sub.Description = "pendek"

	_, err := svc.SubmitStory(context.Background(), sub)
	require.ErrorIs(t, err, validators.ErrDescriptionTooShort)
	assert.Zero(t, recorder.calls)
}

func TestStoryService_SubmitStory_AuthFailurePropagates(t *testing.T) {
	_, api, recorder, svc := newStoryServiceForTest(t)

	api.EXPECT().CreateStory(gomock.Any(), gomock.Any()).Return(adapter.ErrUnauthorized)

	_, err := svc.SubmitStory(context.Background(), testSubmission())
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Zero(t, recorder.calls, "auth failures are not captured for replay")
}

func TestStoryService_SubmitStory_CaptureStoreFailure(t *testing.T) {
	pending, api, _, svc := newStoryServiceForTest(t)

	api.EXPECT().CreateStory(gomock.Any(), gomock.Any()).Return(adapter.ErrConnectivity)
	api.EXPECT().Token().Return("captured-token")
	pending.EXPECT().AddPendingSubmission(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))

	_, err := svc.SubmitStory(context.Background(), testSubmission())
	require.ErrorIs(t, err, ErrCaptureFailed)
}

func TestStoryService_SubmitStory_CoordinatesValidatedWhenPresent(t *testing.T) {
	_, _, _, svc := newStoryServiceForTest(t)

	sub := testSubmission()
	sub.Lon = nil

	_, err := svc.SubmitStory(context.Background(), sub)
	require.ErrorIs(t, err, validators.ErrMissingCoordinates)
}

func TestStoryService_ListStories(t *testing.T) {
	_, api, _, svc := newStoryServiceForTest(t)

	stories := []models.Story{{ID: "story-1", Name: "Dinda"}}
	api.EXPECT().ListStories(gomock.Any()).Return(stories, nil)

	got, err := svc.ListStories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stories, got)
}
