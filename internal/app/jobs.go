package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = time.Minute

// startJobs schedules the background maintenance jobs. The returned
// scheduler must be stopped on shutdown.
func (app *Application) startJobs() (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(app.config.Jobs.TokenPurgeSchedule, app.purgeRefreshTokens)
	if err != nil {
		return nil, fmt.Errorf("schedule refresh token purge: %w", err)
	}

	scheduler.Start()

	app.logger.Info("scheduled refresh token purge", "schedule", app.config.Jobs.TokenPurgeSchedule)

	return scheduler, nil
}

func (app *Application) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	purged, err := app.auth.PurgeExpiredRefreshTokens(ctx)
	if err != nil {
		app.logger.Error("failed to purge expired refresh tokens", "error", err)
		return
	}

	app.logger.Info("purged expired refresh tokens", "count", purged)
}
