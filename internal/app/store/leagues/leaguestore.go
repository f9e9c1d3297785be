// internal/app/store/leagues/leaguestore.go
package leaguestore

import (
	"context"
	"time"

	"github.com/CCRProject300/kudoshub/internal/app/store/memberlist"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("leagues")}
}

// GetByID returns the league unless it is absent or soft-deleted.
// Returns mongo.ErrNoDocuments in both cases; callers translate at the
// engine boundary.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.League, error) {
	var l models.League
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&l)
	if err != nil {
		return models.League{}, err
	}
	return l, nil
}

func (s *Store) Create(ctx context.Context, l models.League) (models.League, error) {
	now := time.Now().UTC()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if l.Panel == nil {
		l.Panel = []models.PanelRef{}
	}
	if l.Members == nil {
		l.Members = models.MemberList{}
	}
	if l.Moderators == nil {
		l.Moderators = models.MemberList{}
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.League{}, err
	}
	return l, nil
}

// SoftDelete marks the league deleted. Returns mongo.ErrNoDocuments if no
// live league matched.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertMember updates the user's membership entry in place, or appends one.
// Calling twice never duplicates an entry.
func (s *Store) UpsertMember(ctx context.Context, leagueID, userID primitive.ObjectID, active, activated bool) error {
	return memberlist.Upsert(ctx, s.c, leagueID, "members", userID, active, activated)
}

// UpsertModerator is UpsertMember for the moderators list.
func (s *Store) UpsertModerator(ctx context.Context, leagueID, userID primitive.ObjectID, active, activated bool) error {
	return memberlist.Upsert(ctx, s.c, leagueID, "moderators", userID, active, activated)
}

// RemoveMember pulls the user's membership entry.
func (s *Store) RemoveMember(ctx context.Context, leagueID, userID primitive.ObjectID) error {
	return memberlist.Remove(ctx, s.c, leagueID, "members", userID)
}

// AddPanelRef appends a panel reference to the league's ordered panel list.
func (s *Store) AddPanelRef(ctx context.Context, leagueID, panelID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": leagueID},
		bson.M{"$push": bson.M{"panel": models.PanelRef{PanelID: panelID}}},
	)
	return err
}

// List returns all live leagues.
func (s *Store) List(ctx context.Context) ([]models.League, error) {
	cur, err := s.c.Find(ctx, bson.M{"deleted": bson.M{"$ne": true}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leagues []models.League
	if err := cur.All(ctx, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// ListByMember returns live leagues where the user has a membership entry.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.League, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"deleted":      bson.M{"$ne": true},
		"members.user": userID,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leagues []models.League
	if err := cur.All(ctx, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}
