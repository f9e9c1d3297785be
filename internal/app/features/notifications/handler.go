// internal/app/features/notifications/handler.go
package notifications

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	notificationstore "github.com/CCRProject300/kudoshub/internal/app/store/notifications"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
)

// Handler is the shared dependency container for the notifications feature.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	Notifications *notificationstore.Store
	Workflow      *notify.Workflow
}

func NewHandler(db *mongo.Database, logger *zap.Logger, workflow *notify.Workflow) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		Notifications: notificationstore.New(db),
		Workflow:      workflow,
	}
}
