package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamRef is an ordered reference from a panel to one of its teams.
// The order is significant: team allocation is first-fit in this order.
type TeamRef struct {
	TeamID primitive.ObjectID `bson:"teamId" json:"teamId"`
}

// Panel is a named category inside a league that owns one or more teams
// (per-company groupings in public leagues, named categories elsewhere).
//
// Members mirrors the active team membership across the panel's teams so the
// switch flow can locate users without scanning every team document.
//
// CompanyID is set on lazily created public-league panels so lookups survive
// company renames; Name matching remains the fallback for legacy documents.
type Panel struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	CompanyID *primitive.ObjectID  `bson:"companyId,omitempty" json:"companyId,omitempty"`
	Team      []TeamRef            `bson:"team" json:"team"`
	Members   []primitive.ObjectID `bson:"members" json:"members"`
	Deleted   bool                 `bson:"deleted" json:"deleted"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// TeamIDs returns the ordered team ids referenced by the panel.
func (p Panel) TeamIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(p.Team))
	for _, t := range p.Team {
		ids = append(ids, t.TeamID)
	}
	return ids
}
