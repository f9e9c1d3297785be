package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamPanel is the denormalized back-reference from a team to its panel.
type TeamPanel struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Team is a bounded-capacity group of league members within a panel.
//
// MemberCount is kept consistent with len(Members) by pairing every push or
// pull with an $inc in the same update. Teams are hard-deleted when their
// last member leaves; Deleted exists for documents soft-deleted by the
// moderation tooling.
type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MemberCount int                `bson:"memberCount" json:"memberCount"`
	Members     MemberList         `bson:"members" json:"members"`
	Panel       TeamPanel          `bson:"panel" json:"panel"`
	Moderators  MemberList         `bson:"moderators" json:"moderators"`
	Deleted     bool               `bson:"deleted" json:"deleted"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
