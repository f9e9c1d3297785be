package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeagueRef is a back-reference from a company to a league it owns.
type LeagueRef struct {
	LeagueID primitive.ObjectID `bson:"leagueId" json:"leagueId"`
}

// Company holds employees (members) and moderators in the same entry shape
// as leagues. Roles are propagated onto user documents when an employee
// confirms their company membership.
type Company struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Members    MemberList         `bson:"members" json:"members"`
	Moderators MemberList         `bson:"moderators" json:"moderators"`
	Leagues    []LeagueRef        `bson:"leagues" json:"leagues"`
	Roles      []string           `bson:"roles" json:"roles"`
	Deleted    bool               `bson:"deleted" json:"deleted"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnsLeague reports whether the company holds a back-reference to the league.
func (c Company) OwnsLeague(leagueID primitive.ObjectID) bool {
	for _, ref := range c.Leagues {
		if ref.LeagueID == leagueID {
			return true
		}
	}
	return false
}
