package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// League types.
const (
	LeagueTypePrivate   = "private"
	LeagueTypeCorporate = "corporate"
	LeagueTypePublic    = "public"
)

// PanelRef is an ordered reference from a league to one of its panels.
type PanelRef struct {
	PanelID primitive.ObjectID `bson:"panelId" json:"panelId"`
}

// League is a competitive group users join to accrue rankings.
//
// TeamSize is nil (or 1) for individual leagues and >= 2 for group leagues.
// Members is the canonical "is invited/joined this league" record; team
// assignment is tracked separately on Team documents.
type League struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	LeagueType  string             `bson:"leagueType" json:"leagueType"`
	TeamSize    *int               `bson:"teamSize" json:"teamSize"`
	MinTeamSize int                `bson:"minTeamSize" json:"minTeamSize"`
	Panel       []PanelRef         `bson:"panel" json:"panel"`
	Members     MemberList         `bson:"members" json:"members"`
	Moderators  MemberList         `bson:"moderators" json:"moderators"`
	Deleted     bool               `bson:"deleted" json:"deleted"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TeamSizeValue returns the effective team size (1 when unset).
func (l League) TeamSizeValue() int {
	if l.TeamSize == nil || *l.TeamSize < 1 {
		return 1
	}
	return *l.TeamSize
}

// Individual reports whether the league has no team structure.
func (l League) Individual() bool {
	return l.TeamSizeValue() <= 1
}

// PanelIDs returns the ordered panel ids referenced by the league.
func (l League) PanelIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(l.Panel))
	for _, p := range l.Panel {
		ids = append(ids, p.PanelID)
	}
	return ids
}

// HasPanel reports whether the league references the given panel.
func (l League) HasPanel(panelID primitive.ObjectID) bool {
	for _, p := range l.Panel {
		if p.PanelID == panelID {
			return true
		}
	}
	return false
}
