// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	notificationstore "github.com/CCRProject300/kudoshub/internal/app/store/notifications"
	"github.com/CCRProject300/kudoshub/internal/app/system/tasks"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. KudosHub
// launches its periodic maintenance jobs here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	notifications := notificationstore.New(deps.KudosHubMongoDatabase)

	runner := tasks.NewRunner(logger)
	runner.Add(tasks.Job{
		Name:     "notification-cleanup",
		Interval: appCfg.CleanupInterval,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().UTC().Add(-appCfg.NotificationRetention)
			removed, err := notifications.DeleteRedeemedBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			if removed > 0 {
				logger.Debug("removed expired notifications",
					zap.Int64("count", removed))
			}
			return nil
		},
	})
	runner.Start(ctx)

	return nil
}
