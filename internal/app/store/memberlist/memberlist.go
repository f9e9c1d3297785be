// Package memberlist implements the upsert-or-append pattern for the
// embedded member lists shared by leagues, companies, and teams.
//
// A membership entry is unique per user within a document. Re-inviting or
// re-confirming updates the existing entry in place via the positional
// operator; a first invite pushes a new entry. Each branch is a single
// atomic document update.
package memberlist

import (
	"context"
	"time"

	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Upsert sets the entry for userID on the named member-list field
// ("members" or "moderators") of the document with the given id.
func Upsert(ctx context.Context, c *mongo.Collection, docID primitive.ObjectID, field string, userID primitive.ObjectID, active, activated bool) error {
	now := time.Now().UTC()

	res, err := c.UpdateOne(ctx,
		bson.M{"_id": docID, field + ".user": userID},
		bson.M{"$set": bson.M{
			field + ".$.active":    active,
			field + ".$.activated": activated,
			field + ".$.startDate": now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = c.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$push": bson.M{field: models.Member{
			User:      userID,
			Active:    active,
			Activated: activated,
			StartDate: now,
		}}},
	)
	return err
}

// Remove pulls the entry for userID from the named member-list field.
func Remove(ctx context.Context, c *mongo.Collection, docID primitive.ObjectID, field string, userID primitive.ObjectID) error {
	_, err := c.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$pull": bson.M{field: bson.M{"user": userID}}},
	)
	return err
}
