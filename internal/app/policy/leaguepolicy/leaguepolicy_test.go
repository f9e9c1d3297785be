package leaguepolicy_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CCRProject300/kudoshub/internal/app/policy/leaguepolicy"
	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"github.com/CCRProject300/kudoshub/internal/testutil"
)

func TestIsMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Steps", models.LeagueTypePrivate, 0)
	member := f.CreateUser(ctx, "Alice")
	moderator := f.CreateUser(ctx, "Mod")
	stranger := f.CreateUser(ctx, "Sam")
	f.AddLeagueMember(ctx, league.ID, member.ID)
	f.AddLeagueModerator(ctx, league.ID, moderator.ID)

	league, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("reloading league: %v", err)
	}

	cases := []struct {
		name   string
		userID primitive.ObjectID
		want   bool
	}{
		{"member", member.ID, true},
		{"moderator", moderator.ID, true},
		{"stranger", stranger.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := leaguepolicy.IsMember(ctx, db, league, tc.userID)
			if err != nil {
				t.Fatalf("IsMember: %v", err)
			}
			if got != tc.want {
				t.Errorf("IsMember(%s): got %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestIsMember_DeclinedEntryExcluded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Steps", models.LeagueTypePrivate, 0)
	decliner := f.CreateUser(ctx, "Dana")
	_, err := db.Collection("leagues").UpdateOne(ctx,
		bson.M{"_id": league.ID},
		bson.M{"$push": bson.M{"members": models.Member{
			User:      decliner.ID,
			Active:    false,
			Activated: true,
		}}},
	)
	if err != nil {
		t.Fatalf("recording declined entry: %v", err)
	}

	league, err = leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("reloading league: %v", err)
	}

	got, err := leaguepolicy.IsMember(ctx, db, league, decliner.ID)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if got {
		t.Error("a declined entry must not grant league visibility")
	}
}

func TestIsMember_PublicLeagueAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Global", models.LeagueTypePublic, 0)
	admin := f.CreateUser(ctx, "Root", models.RoleAdmin)

	league, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("reloading league: %v", err)
	}

	got, err := leaguepolicy.IsMember(ctx, db, league, admin.ID)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !got {
		t.Error("admin should count as a member of a public league")
	}
}

func TestIsModerator_CompanyModeratorOfOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Corp Steps", models.LeagueTypeCorporate, 2)
	company := f.CreateCompany(ctx, "Acme")
	corpMod := f.CreateUser(ctx, "Boss")
	f.AddCompanyModerator(ctx, company.ID, corpMod.ID)
	_, err := db.Collection("companies").UpdateOne(ctx,
		bson.M{"_id": company.ID},
		bson.M{"$push": bson.M{"leagues": models.LeagueRef{LeagueID: league.ID}}},
	)
	if err != nil {
		t.Fatalf("linking league to company: %v", err)
	}

	league, err = leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("reloading league: %v", err)
	}

	got, err := leaguepolicy.IsModerator(ctx, db, league, corpMod.ID)
	if err != nil {
		t.Fatalf("IsModerator: %v", err)
	}
	if !got {
		t.Error("moderator of the owning company should moderate the league")
	}
}

func TestTeamLeague(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Team Steps", models.LeagueTypeCorporate, 2)
	panel := f.CreatePanel(ctx, league.ID, "Engineering")
	user := f.CreateUser(ctx, "Alice")
	team := f.CreateTeam(ctx, panel, "Team 1 - Engineering", user.ID)

	got, found, err := leaguepolicy.TeamLeague(ctx, db, team.ID)
	if err != nil {
		t.Fatalf("TeamLeague: %v", err)
	}
	if !found {
		t.Fatal("TeamLeague should resolve through panel and league refs")
	}
	if got.ID != league.ID {
		t.Errorf("resolved league %s, want %s", got.ID.Hex(), league.ID.Hex())
	}

	_, found, err = leaguepolicy.TeamLeague(ctx, db, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("TeamLeague (missing): %v", err)
	}
	if found {
		t.Error("unknown team id should not resolve to a league")
	}
}
