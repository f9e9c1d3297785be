package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a membership entry embedded on leagues, companies, and teams.
//
// Activated distinguishes "invited, pending" from "confirmed"; Active tracks
// whether the user accepted (true) or declined (false) when they acted on
// the invite. StartDate is set when the entry is created or re-confirmed.
//
// Field names are the legacy storage contract shared with the reporting and
// admin tooling; do not rename them.
type Member struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Active    bool               `bson:"active" json:"active"`
	Activated bool               `bson:"activated" json:"activated"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
}

// MemberList is an embedded list of membership entries. Entries are unique
// per user; the stores enforce this with a positional-update-or-push upsert.
type MemberList []Member

// Find returns the entry for the given user, or nil if absent.
func (l MemberList) Find(userID primitive.ObjectID) *Member {
	for i := range l {
		if l[i].User == userID {
			return &l[i]
		}
	}
	return nil
}

// Contains reports whether the user has any entry, activated or not.
func (l MemberList) Contains(userID primitive.ObjectID) bool {
	return l.Find(userID) != nil
}

// HasActivated reports whether the user has a confirmed entry.
func (l MemberList) HasActivated(userID primitive.ObjectID) bool {
	m := l.Find(userID)
	return m != nil && m.Activated
}

// HasActive reports whether the user has a confirmed entry that is active.
func (l MemberList) HasActive(userID primitive.ObjectID) bool {
	m := l.Find(userID)
	return m != nil && m.Activated && m.Active
}
