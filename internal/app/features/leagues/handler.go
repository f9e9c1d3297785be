// internal/app/features/leagues/handler.go
package leagues

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	companystore "github.com/CCRProject300/kudoshub/internal/app/store/companies"
	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	notificationstore "github.com/CCRProject300/kudoshub/internal/app/store/notifications"
	panelstore "github.com/CCRProject300/kudoshub/internal/app/store/panels"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
	"github.com/CCRProject300/kudoshub/internal/app/system/switcher"
)

// Handler is the shared dependency container for the leagues feature.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	Leagues       *leaguestore.Store
	Panels        *panelstore.Store
	Companies     *companystore.Store
	Notifications *notificationstore.Store
	Joins         *joins.Engine
	Switcher      *switcher.Engine
	Workflow      *notify.Workflow
}

// NewHandler constructs a leagues Handler. Typically called from the
// bootstrap BuildHandler function, where the DB, logger, and workflow are
// already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger, workflow *notify.Workflow) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		Leagues:       leaguestore.New(db),
		Panels:        panelstore.New(db),
		Companies:     companystore.New(db),
		Notifications: notificationstore.New(db),
		Joins:         joins.New(db, logger),
		Switcher:      switcher.New(db, logger),
		Workflow:      workflow,
	}
}
