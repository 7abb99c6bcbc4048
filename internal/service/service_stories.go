package service

import (
	"context"
	"fmt"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/internal/validators"
	"github.com/storyshare/storyshare/models"
)

// User-facing confirmation messages, matching the web app's wording.
const (
	MsgStoryDelivered = "Cerita berhasil dibagikan!"
	MsgStoryQueued    = "Anda sedang offline. Cerita disimpan dan akan dikirim otomatis saat kembali online."
)

type storyService struct {
	pending   store.PendingSubmissionRepository
	adapter   adapter.StoryAPI
	validator validators.Validator
	scheduler SyncScheduler
	logger    *logger.Logger
}

func NewStoryService(
	pending store.PendingSubmissionRepository,
	serverAdapter adapter.StoryAPI,
	validator validators.Validator,
	scheduler SyncScheduler,
	logger *logger.Logger,
) StoryService {
	return &storyService{
		pending:   pending,
		adapter:   serverAdapter,
		validator: validator,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *storyService) ListStories(ctx context.Context) ([]models.Story, error) {
	return s.adapter.ListStories(ctx)
}

func (s *storyService) SubmitStory(ctx context.Context, sub models.StorySubmission) (SubmitOutcome, error) {
	fields := []string{validators.FieldDescription, validators.FieldPhoto}
	if sub.Lat != nil || sub.Lon != nil {
		fields = append(fields, validators.FieldCoordinates)
	}
	if err := s.validator.Validate(ctx, sub, fields...); err != nil {
		return SubmitOutcome{}, err
	}

	err := s.adapter.CreateStory(ctx, adapter.CreateStoryRequest{
		Description: sub.Description,
		Photo:       sub.Photo,
		PhotoName:   sub.PhotoName,
		PhotoType:   sub.PhotoType,
		Lat:         sub.Lat,
		Lon:         sub.Lon,
	})
	if err == nil {
		return SubmitOutcome{Delivered: true, Message: MsgStoryDelivered}, nil
	}

	if !adapter.IsConnectivityError(err) {
		return SubmitOutcome{}, err
	}

	return s.capture(ctx, sub, err)
}

// capture persists the submission locally with the bearer token held at
// capture time, so the reconciliation engine can replay it with the same
// credentials even after a later logout.
func (s *storyService) capture(ctx context.Context, sub models.StorySubmission, cause error) (SubmitOutcome, error) {
	record := models.PendingSubmission{
		Description:  sub.Description,
		PhotoPayload: models.EncodePhoto(sub.Photo, sub.PhotoType),
		PhotoName:    sub.PhotoName,
		PhotoType:    sub.PhotoType,
		Lat:          sub.Lat,
		Lon:          sub.Lon,
		AuthToken:    s.adapter.Token(),
	}

	id, err := s.pending.AddPendingSubmission(ctx, record)
	if err != nil {
		return SubmitOutcome{}, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	s.logger.Info().
		Int64("pending_id", id).
		AnErr("cause", cause).
		Msg("story captured for deferred delivery")

	if s.scheduler != nil {
		s.scheduler.Trigger()
	}

	return SubmitOutcome{PendingID: id, Message: MsgStoryQueued}, nil
}
