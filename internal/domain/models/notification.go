package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType discriminates notification documents. Invite types carry
// a join decision; informational types only get marked redeemed.
type NotificationType string

const (
	NotificationIndLeagueInvite    NotificationType = "indLeagueInvite"
	NotificationGroupLeagueInvite  NotificationType = "groupLeagueInvite"
	NotificationCompanyInvite      NotificationType = "companyInvite"
	NotificationCorpModInvite      NotificationType = "corpModInvite"
	NotificationJoinedLeague       NotificationType = "joinedLeague"
	NotificationOnboarding         NotificationType = "onboarding"
	NotificationMissingStats       NotificationType = "missingStats"
	NotificationDisconnectedMethod NotificationType = "disconnectedMethod"
)

// Informational reports whether confirming the notification carries no side
// effect beyond marking it redeemed.
func (t NotificationType) Informational() bool {
	switch t {
	case NotificationJoinedLeague, NotificationOnboarding,
		NotificationMissingStats, NotificationDisconnectedMethod:
		return true
	}
	return false
}

// NotificationUser identifies the notification's target user.
type NotificationUser struct {
	ID primitive.ObjectID `bson:"_id" json:"_id"`
}

// NotificationGroup identifies the league or company the notification
// concerns, with a denormalized display name.
type NotificationGroup struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// NotificationMessage is one message line attached to a notification.
type NotificationMessage struct {
	ID        string    `bson:"id" json:"id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Notification is a pending or redeemed record addressed to one user.
//
// At most one live (not deleted, not redeemed) notification exists per
// (user, group, type); the store enforces this by upserting on that key.
// RedeemedAt is the single terminal transition; Deleted is an orthogonal
// withdrawal flag that hides the record from pending listings.
type Notification struct {
	ID         primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	User       NotificationUser      `bson:"user" json:"user"`
	Type       NotificationType      `bson:"type" json:"type"`
	Group      NotificationGroup     `bson:"group" json:"group"`
	Messages   []NotificationMessage `bson:"messages" json:"messages"`
	Panels     []PanelRef            `bson:"panels,omitempty" json:"panels,omitempty"`
	Deleted    bool                  `bson:"deleted" json:"deleted"`
	RedeemedAt *time.Time            `bson:"redeemedAt" json:"redeemedAt"`
	CreatedAt  time.Time             `bson:"createdAt" json:"createdAt"`
}

// Pending reports whether the notification can still be acted upon.
func (n Notification) Pending() bool {
	return !n.Deleted && n.RedeemedAt == nil
}
