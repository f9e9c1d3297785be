// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListByIDs returns the live users for the given ids, in no particular
// order. Used to resolve invite recipients and email preferences.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{
		"_id":     bson.M{"$in": ids},
		"deleted": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GrantRoles adds roles to the user without duplicating existing ones.
func (s *Store) GrantRoles(ctx context.Context, userID primitive.ObjectID, roles ...string) error {
	if len(roles) == 0 {
		return nil
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"roles": bson.M{"$each": roles}},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// SetCompanyName denormalizes the company display name onto the user
// document when a company membership is confirmed.
func (s *Store) SetCompanyName(ctx context.Context, userID primitive.ObjectID, name string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"companyName": name, "updatedAt": time.Now().UTC()}},
	)
	return err
}

// HasRole reports whether the user document carries the given role.
func (s *Store) HasRole(ctx context.Context, userID primitive.ObjectID, role string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"_id":     userID,
		"deleted": bson.M{"$ne": true},
		"roles":   role,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
