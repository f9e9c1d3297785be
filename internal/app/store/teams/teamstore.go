// internal/app/store/teams/teamstore.go
package teamstore

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
	return &Store{c: db.Collection("teams")}
}

// GetByID returns the team unless it is absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&t)
	if err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// ListByIDs returns the live teams for the given ids, preserving the order
// the ids were given in. The allocator's first-fit rule depends on this
// order matching the panel's team list.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Team, error) {
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

	var fetched []models.Team
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Team, len(fetched))
	for _, t := range fetched {
		byID[t.ID] = t
	}
	ordered := make([]models.Team, 0, len(fetched))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Members == nil {
		t.Members = models.MemberList{}
	}
	if t.Moderators == nil {
		t.Moderators = models.MemberList{}
	}
	t.MemberCount = len(t.Members)
	t.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// AddMember pushes the member entry and increments memberCount in one
// atomic update, keeping the count consistent with the list.
func (s *Store) AddMember(ctx context.Context, teamID primitive.ObjectID, m models.Member) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$push": bson.M{"members": m},
			"$inc":  bson.M{"memberCount": 1},
		},
	)
	return err
}

// RemoveMember pulls the member entry and decrements memberCount in one
// atomic update.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user": userID}},
			"$inc":  bson.M{"memberCount": -1},
		},
	)
	return err
}

// Delete hard-removes the team document. Emptied teams are destroyed, not
// soft-deleted, so frequent switching cannot accumulate dead teams.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
