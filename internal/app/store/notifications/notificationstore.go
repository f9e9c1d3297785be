// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"time"

	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Notification, error) {
	var n models.Notification
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&n)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// UpsertPending writes an invite keyed on (user, group, type) over the live
// (not deleted, not redeemed) record if one exists, else inserts. Re-inviting
// an already-pending user replaces the pending notification rather than
// duplicating it.
func (s *Store) UpsertPending(ctx context.Context, n models.Notification) error {
	filter := bson.M{
		"user._id":   n.User.ID,
		"group._id":  n.Group.ID,
		"type":       n.Type,
		"deleted":    bson.M{"$ne": true},
		"redeemedAt": nil,
	}
	set := bson.M{
		"group.name": n.Group.Name,
		"messages":   n.Messages,
		"deleted":    false,
	}
	if len(n.Panels) > 0 {
		set["panels"] = n.Panels
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// MarkRedeemed records the terminal transition for a pending notification.
// Returns mongo.ErrNoDocuments when the notification was already redeemed
// or withdrawn.
func (s *Store) MarkRedeemed(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}, "redeemedAt": nil},
		bson.M{"$set": bson.M{"redeemedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SoftDeleteByGroup withdraws all live notifications that concern the given
// league or company (league deleted, member removed). Returns the number of
// notifications withdrawn.
func (s *Store) SoftDeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"group._id": groupID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListPendingForUser returns the user's live notifications, newest first.
func (s *Store) ListPendingForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user._id": userID, "deleted": bson.M{"$ne": true}, "redeemedAt": nil},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notifications []models.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// DeleteRedeemedBefore hard-removes notifications redeemed before the
// cutoff. Used by the retention job.
func (s *Store) DeleteRedeemedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"redeemedAt": bson.M{"$ne": nil, "$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
