package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user. Email preferences default to all
// categories so invite email paths are exercised.
func (f *Fixtures) CreateUser(ctx context.Context, firstName string, roles ...string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:               primitive.NewObjectID(),
		FirstName:        firstName,
		LastName:         "Tester",
		Email:            fmt.Sprintf("%s@test.com", primitive.NewObjectID().Hex()),
		Roles:            roles,
		EmailPreferences: []string{models.EmailPrefLeagues, models.EmailPrefCompany},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCompany inserts a test company.
func (f *Fixtures) CreateCompany(ctx context.Context, name string) models.Company {
	f.t.Helper()

	now := time.Now().UTC()
	company := models.Company{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Members:    models.MemberList{},
		Moderators: models.MemberList{},
		Leagues:    []models.LeagueRef{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("companies").InsertOne(ctx, company); err != nil {
		f.t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// AddCompanyMember appends an active, activated membership entry.
func (f *Fixtures) AddCompanyMember(ctx context.Context, companyID, userID primitive.ObjectID) {
	f.t.Helper()
	f.pushMember(ctx, "companies", companyID, "members", userID)
}

// AddCompanyModerator appends an active, activated moderator entry.
func (f *Fixtures) AddCompanyModerator(ctx context.Context, companyID, userID primitive.ObjectID) {
	f.t.Helper()
	f.pushMember(ctx, "companies", companyID, "moderators", userID)
}

// CreateLeague inserts a test league. teamSize <= 1 produces an individual
// league.
func (f *Fixtures) CreateLeague(ctx context.Context, name, leagueType string, teamSize int) models.League {
	f.t.Helper()

	now := time.Now().UTC()
	league := models.League{
		ID:         primitive.NewObjectID(),
		Name:       name,
		LeagueType: leagueType,
		Panel:      []models.PanelRef{},
		Members:    models.MemberList{},
		Moderators: models.MemberList{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if teamSize > 0 {
		league.TeamSize = &teamSize
	}
	if _, err := f.db.Collection("leagues").InsertOne(ctx, league); err != nil {
		f.t.Fatalf("failed to create test league: %v", err)
	}
	return league
}

// AddLeagueMember appends an active, activated membership entry.
func (f *Fixtures) AddLeagueMember(ctx context.Context, leagueID, userID primitive.ObjectID) {
	f.t.Helper()
	f.pushMember(ctx, "leagues", leagueID, "members", userID)
}

// AddLeagueModerator appends an active, activated moderator entry.
func (f *Fixtures) AddLeagueModerator(ctx context.Context, leagueID, userID primitive.ObjectID) {
	f.t.Helper()
	f.pushMember(ctx, "leagues", leagueID, "moderators", userID)
}

// CreatePanel inserts a panel and links it to the league.
func (f *Fixtures) CreatePanel(ctx context.Context, leagueID primitive.ObjectID, name string) models.Panel {
	f.t.Helper()

	panel := models.Panel{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Team:      []models.TeamRef{},
		Members:   []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("panels").InsertOne(ctx, panel); err != nil {
		f.t.Fatalf("failed to create test panel: %v", err)
	}
	f.push(ctx, "leagues", leagueID, "panel", models.PanelRef{PanelID: panel.ID})
	return panel
}

// CreateCompanyPanel inserts a panel carrying a company back-reference.
func (f *Fixtures) CreateCompanyPanel(ctx context.Context, leagueID, companyID primitive.ObjectID, name string) models.Panel {
	f.t.Helper()

	panel := models.Panel{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CompanyID: &companyID,
		Team:      []models.TeamRef{},
		Members:   []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("panels").InsertOne(ctx, panel); err != nil {
		f.t.Fatalf("failed to create test panel: %v", err)
	}
	f.push(ctx, "leagues", leagueID, "panel", models.PanelRef{PanelID: panel.ID})
	return panel
}

// CreateTeam inserts a team with the given members and links it to the
// panel.
func (f *Fixtures) CreateTeam(ctx context.Context, panel models.Panel, name string, memberIDs ...primitive.ObjectID) models.Team {
	f.t.Helper()

	members := models.MemberList{}
	for _, id := range memberIDs {
		members = append(members, models.Member{
			User:      id,
			Active:    true,
			Activated: true,
			StartDate: time.Now().UTC(),
		})
	}
	team := models.Team{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Members:     members,
		MemberCount: len(members),
		Moderators:  models.MemberList{},
		Panel:       models.TeamPanel{ID: panel.ID, Name: panel.Name},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	f.push(ctx, "panels", panel.ID, "team", models.TeamRef{TeamID: team.ID})
	return team
}

// CreateNotification inserts a pending notification.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, typ models.NotificationType, group models.NotificationGroup) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		User:      models.NotificationUser{ID: userID},
		Type:      typ,
		Group:     group,
		Messages:  []models.NotificationMessage{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

func (f *Fixtures) pushMember(ctx context.Context, collection string, docID primitive.ObjectID, field string, userID primitive.ObjectID) {
	f.push(ctx, collection, docID, field, models.Member{
		User:      userID,
		Active:    true,
		Activated: true,
		StartDate: time.Now().UTC(),
	})
}

func (f *Fixtures) push(ctx context.Context, collection string, docID primitive.ObjectID, field string, value any) {
	f.t.Helper()
	_, err := f.db.Collection(collection).UpdateOne(ctx,
		map[string]any{"_id": docID},
		map[string]any{"$push": map[string]any{field: value}},
	)
	if err != nil {
		f.t.Fatalf("failed to push %s onto %s: %v", field, collection, err)
	}
}
