// internal/app/store/panels/panelstore.go
package panelstore

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
	return &Store{c: db.Collection("panels")}
}

// GetByID returns the panel unless it is absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Panel, error) {
	var p models.Panel
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&p)
	if err != nil {
		return models.Panel{}, err
	}
	return p, nil
}

// ListByIDs returns the live panels for the given ids, in the order the ids
// were given. Missing or deleted panels are skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Panel, error) {
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

	var fetched []models.Panel
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Panel, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	ordered := make([]models.Panel, 0, len(fetched))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *Store) Create(ctx context.Context, p models.Panel) (models.Panel, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Team == nil {
		p.Team = []models.TeamRef{}
	}
	if p.Members == nil {
		p.Members = []primitive.ObjectID{}
	}
	p.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Panel{}, err
	}
	return p, nil
}

// AddTeamRef appends a team reference to the panel's ordered team list.
// Team allocation is first-fit in this order.
func (s *Store) AddTeamRef(ctx context.Context, panelID, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": panelID},
		bson.M{"$push": bson.M{"team": models.TeamRef{TeamID: teamID}}},
	)
	return err
}

// RemoveTeamRef pulls a team reference; called when an emptied team is
// destroyed.
func (s *Store) RemoveTeamRef(ctx context.Context, panelID, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": panelID},
		bson.M{"$pull": bson.M{"team": bson.M{"teamId": teamID}}},
	)
	return err
}

// AddMember records the user in the panel's denormalized member mirror.
func (s *Store) AddMember(ctx context.Context, panelID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": panelID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	return err
}

// RemoveMember drops the user from the panel's denormalized member mirror.
func (s *Store) RemoveMember(ctx context.Context, panelID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": panelID},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	return err
}
