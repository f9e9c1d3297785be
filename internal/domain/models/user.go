package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles granted on user documents.
const (
	RoleAdmin   = "admin"
	RoleCorpMod = "corporate_mod"
)

// Email preference keys users opt into.
const (
	EmailPrefLeagues = "leagues"
	EmailPrefCompany = "company"
)

// User carries only the fields the membership engine reads and writes.
// Profile, auth, and KudosCoin balances live with the excluded collaborators.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName        string             `bson:"firstName" json:"firstName"`
	LastName         string             `bson:"lastName" json:"lastName"`
	Email            string             `bson:"email" json:"email"`
	Roles            []string           `bson:"roles" json:"roles"`
	CompanyName      string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	EmailPreferences []string           `bson:"emailPreferences" json:"emailPreferences"`
	Deleted          bool               `bson:"deleted" json:"deleted"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// WantsEmail reports whether the user opted into the given email category.
func (u User) WantsEmail(pref string) bool {
	for _, p := range u.EmailPreferences {
		if p == pref {
			return true
		}
	}
	return false
}
