// internal/app/policy/leaguepolicy.go
package leaguepolicy

import (
	"context"
	"errors"

	companystore "github.com/CCRProject300/kudoshub/internal/app/store/companies"
	userstore "github.com/CCRProject300/kudoshub/internal/app/store/users"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsMember reports whether the user may view the league: an active member
// entry, an active moderator entry, an admin role on a public league, or
// moderator of a company that owns the league all qualify. Pending or
// declined entries do not.
// Pure reads; returns (false, nil) rather than an error when checks simply
// fail, so callers translate to forbidden at the boundary.
func IsMember(ctx context.Context, db *mongo.Database, league models.League, userID primitive.ObjectID) (bool, error) {
	if league.Members.HasActive(userID) || league.Moderators.HasActive(userID) {
		return true, nil
	}
	if league.LeagueType == models.LeagueTypePublic {
		isAdmin, err := userstore.New(db).HasRole(ctx, userID, models.RoleAdmin)
		if err != nil {
			return false, err
		}
		if isAdmin {
			return true, nil
		}
	}
	return companystore.New(db).IsModeratorOfLeagueOwner(ctx, league.ID, userID)
}

// IsModerator reports whether the user may manage the league: an active
// moderator entry, moderator of an owning company, or an admin role on a
// public league.
func IsModerator(ctx context.Context, db *mongo.Database, league models.League, userID primitive.ObjectID) (bool, error) {
	if league.Moderators.HasActive(userID) {
		return true, nil
	}
	if league.LeagueType == models.LeagueTypePublic {
		isAdmin, err := userstore.New(db).HasRole(ctx, userID, models.RoleAdmin)
		if err != nil {
			return false, err
		}
		if isAdmin {
			return true, nil
		}
	}
	return companystore.New(db).IsModeratorOfLeagueOwner(ctx, league.ID, userID)
}

// TeamLeague resolves a team id back to its league through the
// panel.team.teamId and league.panel.panelId indirections. Returns
// (zero, nil) when any link in the chain is missing rather than an error.
func TeamLeague(ctx context.Context, db *mongo.Database, teamID primitive.ObjectID) (models.League, bool, error) {
	var panel struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := db.Collection("panels").FindOne(ctx, bson.M{
		"team.teamId": teamID,
		"deleted":     bson.M{"$ne": true},
	}).Decode(&panel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.League{}, false, nil
	}
	if err != nil {
		return models.League{}, false, err
	}

	var league models.League
	err = db.Collection("leagues").FindOne(ctx, bson.M{
		"panel.panelId": panel.ID,
		"deleted":       bson.M{"$ne": true},
	}).Decode(&league)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.League{}, false, nil
	}
	if err != nil {
		return models.League{}, false, err
	}
	return league, true, nil
}
