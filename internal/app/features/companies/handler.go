// internal/app/features/companies/handler.go
package companies

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	companystore "github.com/CCRProject300/kudoshub/internal/app/store/companies"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
)

// Handler is the shared dependency container for the companies feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Companies *companystore.Store
	Joins     *joins.Engine
	Workflow  *notify.Workflow
}

func NewHandler(db *mongo.Database, logger *zap.Logger, workflow *notify.Workflow) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Companies: companystore.New(db),
		Joins:     joins.New(db, logger),
		Workflow:  workflow,
	}
}
