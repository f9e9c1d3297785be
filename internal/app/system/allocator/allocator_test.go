package allocator_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	panelstore "github.com/CCRProject300/kudoshub/internal/app/store/panels"
	teamstore "github.com/CCRProject300/kudoshub/internal/app/store/teams"
	"github.com/CCRProject300/kudoshub/internal/app/system/allocator"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"github.com/CCRProject300/kudoshub/internal/testutil"
)

func TestGetOrCreateTeam_FirstFit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Step Challenge", models.LeagueTypeCorporate, 2)
	panel := f.CreatePanel(ctx, league.ID, "Engineering")

	alloc := allocator.New(db, zap.NewNop())
	leagues := leaguestore.New(db)
	teams := teamstore.New(db)

	league, err := leagues.GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("reloading league: %v", err)
	}

	u1 := f.CreateUser(ctx, "Alice")
	u2 := f.CreateUser(ctx, "Bob")
	u3 := f.CreateUser(ctx, "Carol")

	t1, err := alloc.GetOrCreateTeam(ctx, league, panel.ID, u1.ID, true)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if t1.Name != "Team 1 - Engineering" {
		t.Errorf("first team name: got %q, want %q", t1.Name, "Team 1 - Engineering")
	}

	t2, err := alloc.GetOrCreateTeam(ctx, league, panel.ID, u2.ID, true)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if t2.ID != t1.ID {
		t.Errorf("second join should fill the first team, got team %s", t2.Name)
	}

	t3, err := alloc.GetOrCreateTeam(ctx, league, panel.ID, u3.ID, true)
	if err != nil {
		t.Fatalf("third join: %v", err)
	}
	if t3.ID == t1.ID {
		t.Error("third join should not land in the full first team")
	}
	if t3.Name != "Team 2 - Engineering" {
		t.Errorf("third team name: got %q, want %q", t3.Name, "Team 2 - Engineering")
	}

	first, err := teams.GetByID(ctx, t1.ID)
	if err != nil {
		t.Fatalf("loading first team: %v", err)
	}
	if len(first.Members) != 2 || first.MemberCount != 2 {
		t.Errorf("first team: got %d members (count %d), want 2/2", len(first.Members), first.MemberCount)
	}
	second, err := teams.GetByID(ctx, t3.ID)
	if err != nil {
		t.Fatalf("loading second team: %v", err)
	}
	if len(second.Members) != 1 || second.MemberCount != 1 {
		t.Errorf("second team: got %d members (count %d), want 1/1", len(second.Members), second.MemberCount)
	}
}

func TestLeaveTeam_DestroysEmptyTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Cycle League", models.LeagueTypeCorporate, 2)
	panel := f.CreatePanel(ctx, league.ID, "Sales")
	user := f.CreateUser(ctx, "Dave")
	team := f.CreateTeam(ctx, panel, "Team 1 - Sales", user.ID)

	alloc := allocator.New(db, zap.NewNop())
	panels := panelstore.New(db)

	if err := alloc.LeaveTeam(ctx, team, user.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	n, err := db.Collection("teams").CountDocuments(ctx, bson.M{"_id": team.ID})
	if err != nil {
		t.Fatalf("counting teams: %v", err)
	}
	if n != 0 {
		t.Error("emptied team should be hard-deleted")
	}

	p, err := panels.GetByID(ctx, panel.ID)
	if err != nil {
		t.Fatalf("loading panel: %v", err)
	}
	if len(p.Team) != 0 {
		t.Errorf("panel should have no team refs after destruction, got %d", len(p.Team))
	}
}

func TestLeaveTeam_DecrementsWhenOthersRemain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Row League", models.LeagueTypeCorporate, 3)
	panel := f.CreatePanel(ctx, league.ID, "Ops")
	u1 := f.CreateUser(ctx, "Erin")
	u2 := f.CreateUser(ctx, "Frank")
	team := f.CreateTeam(ctx, panel, "Team 1 - Ops", u1.ID, u2.ID)

	alloc := allocator.New(db, zap.NewNop())
	teams := teamstore.New(db)

	if err := alloc.LeaveTeam(ctx, team, u1.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	got, err := teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("team should still exist: %v", err)
	}
	if len(got.Members) != 1 || got.MemberCount != 1 {
		t.Errorf("got %d members (count %d), want 1/1", len(got.Members), got.MemberCount)
	}
	if got.Members.Contains(u1.ID) {
		t.Error("departed user still present in team")
	}
}
