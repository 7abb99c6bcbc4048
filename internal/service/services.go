package service

import (
	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/notify"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/internal/validators"
)

type Services struct {
	AuthService      AuthService
	StoryService     StoryService
	FavoritesService FavoritesService
	SyncService      SyncService
	SyncJob          SyncJob
}

func NewServices(
	storages *store.Storages,
	serverAdapter adapter.StoryAPI,
	notifier notify.Notifier,
	workersCfg config.ClientWorkers,
	logger *logger.Logger,
) *Services {
	syncSvc := NewSyncService(storages.PendingSubmissions, serverAdapter, notifier, workersCfg.MaxRetries, logger)
	syncJob := NewSyncJob(syncSvc, logger)

	return &Services{
		AuthService:      NewAuthService(storages.Session, serverAdapter, logger),
		StoryService:     NewStoryService(storages.PendingSubmissions, serverAdapter, validators.NewSubmissionValidator(), syncJob, logger),
		FavoritesService: NewFavoritesService(storages.Favorites, logger),
		SyncService:      syncSvc,
		SyncJob:          syncJob,
	}
}
