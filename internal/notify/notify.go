// Package notify delivers local desktop notifications for sync outcomes.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/storyshare/storyshare/internal/logger"
)

// Notifier announces user-visible events such as completed background syncs.
type Notifier interface {
	Notify(title, message string) error
}

//go:generate mockgen -source=notify.go -destination=../mock/notify_mock.go -package=mock

// DesktopNotifier shows notifications through the operating system's
// notification facility.
type DesktopNotifier struct {
	appName string
	logger  *logger.Logger
}

func NewDesktopNotifier(appName string, logger *logger.Logger) *DesktopNotifier {
	return &DesktopNotifier{appName: appName, logger: logger}
}

func (d *DesktopNotifier) Notify(title, message string) error {
	beeep.AppName = d.appName
	if err := beeep.Notify(title, message, ""); err != nil {
		d.logger.Err(err).Str("title", title).Msg("failed to show desktop notification")
		return err
	}
	return nil
}

// NopNotifier swallows notifications. Used in tests and headless runs.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) error { return nil }
