// internal/app/store/companies/companystore.go
package companystore

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
	return &Store{c: db.Collection("companies")}
}

// GetByID returns the company unless it is absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Company, error) {
	var c models.Company
	err := s.c.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&c)
	if err != nil {
		return models.Company{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Company) (models.Company, error) {
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Members == nil {
		c.Members = models.MemberList{}
	}
	if c.Moderators == nil {
		c.Moderators = models.MemberList{}
	}
	if c.Leagues == nil {
		c.Leagues = []models.LeagueRef{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Company{}, err
	}
	return c, nil
}

// UpsertMember updates the user's membership entry in place, or appends one.
func (s *Store) UpsertMember(ctx context.Context, companyID, userID primitive.ObjectID, active, activated bool) error {
	return memberlist.Upsert(ctx, s.c, companyID, "members", userID, active, activated)
}

// UpsertModerator is UpsertMember for the moderators list.
func (s *Store) UpsertModerator(ctx context.Context, companyID, userID primitive.ObjectID, active, activated bool) error {
	return memberlist.Upsert(ctx, s.c, companyID, "moderators", userID, active, activated)
}

// AddLeagueRef records a league back-reference on the owning company.
func (s *Store) AddLeagueRef(ctx context.Context, companyID, leagueID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": companyID},
		bson.M{"$addToSet": bson.M{"leagues": models.LeagueRef{LeagueID: leagueID}}},
	)
	return err
}

// HasActiveMembership reports whether the user has an active, activated
// membership in any live company. Public individual leagues gate joining on
// this.
func (s *Store) HasActiveMembership(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"deleted": bson.M{"$ne": true},
		"members": bson.M{"$elemMatch": bson.M{
			"user":      userID,
			"active":    true,
			"activated": true,
		}},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindMemberCompany returns the company where the user is an active,
// activated member. Returns mongo.ErrNoDocuments if there is none.
func (s *Store) FindMemberCompany(ctx context.Context, userID primitive.ObjectID) (models.Company, error) {
	var c models.Company
	err := s.c.FindOne(ctx, bson.M{
		"deleted": bson.M{"$ne": true},
		"members": bson.M{"$elemMatch": bson.M{
			"user":      userID,
			"active":    true,
			"activated": true,
		}},
	}).Decode(&c)
	if err != nil {
		return models.Company{}, err
	}
	return c, nil
}

// IsModerator reports whether the user is an active, activated moderator of
// the company. Declined invitations leave an inactive entry and do not
// qualify.
func (s *Store) IsModerator(ctx context.Context, companyID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"_id":     companyID,
		"deleted": bson.M{"$ne": true},
		"moderators": bson.M{"$elemMatch": bson.M{
			"user":      userID,
			"active":    true,
			"activated": true,
		}},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsModeratorOfLeagueOwner reports whether the user is an active, activated
// moderator of any company that holds a back-reference to the league.
func (s *Store) IsModeratorOfLeagueOwner(ctx context.Context, leagueID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"deleted":         bson.M{"$ne": true},
		"leagues.leagueId": leagueID,
		"moderators": bson.M{"$elemMatch": bson.M{
			"user":      userID,
			"active":    true,
			"activated": true,
		}},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
