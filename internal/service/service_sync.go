// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/notify"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/models"
)

const (
	notifyTitle = "StoryShare"

	// MsgReloginRequired is shown once per pass when queued submissions were
	// abandoned because their captured token is no longer accepted.
	MsgReloginRequired = "Sesi Anda telah berakhir. Silakan masuk kembali untuk melanjutkan."
)

// MsgSyncSummary formats the single notification emitted after a pass that
// delivered at least one queued story.
func MsgSyncSummary(count int) string {
	return fmt.Sprintf("%d cerita berhasil disinkronkan!", count)
}

type syncService struct {
	pending    store.PendingSubmissionRepository
	adapter    adapter.StoryAPI
	notifier   notify.Notifier
	maxRetries int
	logger     *logger.Logger

	draining atomic.Bool
}

// NewSyncService builds the reconciliation engine. maxRetries caps how many
// times a submission failing with an authentication error is retried before
// being abandoned; zero means retry forever. Non-auth failures always retry.
func NewSyncService(
	pending store.PendingSubmissionRepository,
	serverAdapter adapter.StoryAPI,
	notifier notify.Notifier,
	maxRetries int,
	logger *logger.Logger,
) SyncService {
	return &syncService{
		pending:    pending,
		adapter:    serverAdapter,
		notifier:   notifier,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (s *syncService) Pending(ctx context.Context) ([]models.PendingSubmission, error) {
	return s.pending.ListPendingSubmissions(ctx)
}

func (s *syncService) Drain(ctx context.Context) (DrainReport, error) {
	if !s.draining.CompareAndSwap(false, true) {
		return DrainReport{Skipped: true}, nil
	}
	defer s.draining.Store(false)

	records, err := s.pending.ListPendingSubmissions(ctx)
	if err != nil {
		return DrainReport{}, fmt.Errorf("list pending submissions: %w", err)
	}
	if len(records) == 0 {
		return DrainReport{}, nil
	}

	log := s.logger.With().Str("pass_id", uuid.NewString()).Logger()
	log.Info().Int("pending", len(records)).Msg("drain pass started")

	var report DrainReport
	needsRelogin := false

	// Strictly sequential: one in-flight upload at a time keeps retry
	// bookkeeping simple and avoids hammering the remote service.
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		switch s.replay(ctx, log, rec) {
		case replayDelivered:
			report.Synced++
		case replayAbandonedAuth:
			report.Abandoned++
			needsRelogin = true
		case replayDropped:
			report.Abandoned++
		default:
			report.Failed++
		}
	}

	log.Info().
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Int("abandoned", report.Abandoned).
		Msg("drain pass finished")

	if report.Synced > 0 {
		if err := s.notifier.Notify(notifyTitle, MsgSyncSummary(report.Synced)); err != nil {
			log.Err(err).Msg("failed to emit sync summary notification")
		}
	}
	if needsRelogin {
		if err := s.notifier.Notify(notifyTitle, MsgReloginRequired); err != nil {
			log.Err(err).Msg("failed to emit re-login notification")
		}
	}

	return report, nil
}

type replayOutcome int

const (
	replayFailed replayOutcome = iota
	replayDelivered
	replayDropped
	replayAbandonedAuth
)

// replay uploads a single queued submission. A record's fate is independent
// of its siblings: delivered records are deleted, failed ones keep their spot
// in the queue with a bumped retry counter.
func (s *syncService) replay(ctx context.Context, log zerolog.Logger, rec models.PendingSubmission) replayOutcome {
	photo, err := rec.DecodePhoto()
	if err != nil {
		// A corrupt payload can never deliver. Drop it rather than retry
		// it forever.
		log.Err(err).Int64("pending_id", rec.ID).Msg("dropping undecodable pending submission")
		if delErr := s.pending.DeletePendingSubmission(ctx, rec.ID); delErr != nil {
			log.Err(delErr).Int64("pending_id", rec.ID).Msg("failed to delete corrupt submission")
		}
		return replayDropped
	}

	err = s.adapter.CreateStory(ctx, adapter.CreateStoryRequest{
		Description: rec.Description,
		Photo:       photo,
		PhotoName:   rec.PhotoName,
		PhotoType:   rec.PhotoType,
		Lat:         rec.Lat,
		Lon:         rec.Lon,
		Token:       rec.AuthToken,
	})
	if err == nil {
		if delErr := s.pending.DeletePendingSubmission(ctx, rec.ID); delErr != nil {
			// The server accepted the story; the stale record will retry
			// and may duplicate, but nothing is lost.
			log.Err(delErr).Int64("pending_id", rec.ID).Msg("failed to delete delivered submission")
		}
		return replayDelivered
	}

	retries, incErr := s.pending.IncrementRetry(ctx, rec.ID)
	if incErr != nil {
		log.Err(incErr).Int64("pending_id", rec.ID).Msg("failed to bump retry counter")
	}

	if errors.Is(err, adapter.ErrUnauthorized) && s.maxRetries > 0 && retries >= s.maxRetries {
		log.Warn().
			Int64("pending_id", rec.ID).
			Int("retries", retries).
			Msg("abandoning submission: captured token rejected and retry budget exhausted")
		if delErr := s.pending.DeletePendingSubmission(ctx, rec.ID); delErr != nil {
			log.Err(delErr).Int64("pending_id", rec.ID).Msg("failed to delete abandoned submission")
		}
		return replayAbandonedAuth
	}

	log.Warn().
		Err(err).
		Int64("pending_id", rec.ID).
		Int("retries", retries).
		Msg("pending submission failed, will retry next pass")
	return replayFailed
}
