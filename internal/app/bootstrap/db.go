// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the membership engine queries against.
// All index builds are idempotent; existing indexes are left alone.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.KudosHubMongoDatabase

	indexes := map[string][]mongo.IndexModel{
		"leagues": {
			{Keys: bson.D{{Key: "members.user", Value: 1}}},
			{Keys: bson.D{{Key: "panel.panelId", Value: 1}}},
		},
		"panels": {
			{Keys: bson.D{{Key: "team.teamId", Value: 1}}},
		},
		"teams": {
			{Keys: bson.D{{Key: "members.user", Value: 1}}},
			{Keys: bson.D{{Key: "panel._id", Value: 1}}},
		},
		"companies": {
			{Keys: bson.D{{Key: "members.user", Value: 1}}},
			{Keys: bson.D{{Key: "leagues.leagueId", Value: 1}}},
		},
		"notifications": {
			// Invite upserts and the pending listing both hit this key.
			{Keys: bson.D{
				{Key: "user._id", Value: 1},
				{Key: "group._id", Value: 1},
				{Key: "type", Value: 1},
			}},
			{Keys: bson.D{{Key: "redeemedAt", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("creating indexes",
				zap.String("collection", collection),
				zap.Error(err))
			return err
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
