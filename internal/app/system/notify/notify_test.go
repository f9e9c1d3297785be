package notify_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/mailer"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"github.com/CCRProject300/kudoshub/internal/testutil"
)

func newWorkflow(db *mongo.Database) *notify.Workflow {
	logger := zap.NewNop()
	return notify.New(db, joins.New(db, logger), mailer.Discard{}, "http://localhost:3000", logger)
}

func TestInviteToLeague_UpsertIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	user := f.CreateUser(ctx, "Alice")

	w := newWorkflow(db)

	if err := w.InviteToLeague(ctx, league, []primitive.ObjectID{user.ID}, "come join"); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if err := w.InviteToLeague(ctx, league, []primitive.ObjectID{user.ID}, "please join"); err != nil {
		t.Fatalf("second invite: %v", err)
	}

	n, err := db.Collection("notifications").CountDocuments(ctx, bson.M{
		"user._id":  user.ID,
		"group._id": league.ID,
		"deleted":   bson.M{"$ne": true},
	})
	if err != nil {
		t.Fatalf("counting notifications: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d live notifications, want exactly 1", n)
	}
}

func TestHandle_WrongUserForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	invitee := f.CreateUser(ctx, "Alice")
	imposter := f.CreateUser(ctx, "Mallory")
	n := f.CreateNotification(ctx, invitee.ID, models.NotificationIndLeagueInvite,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	w := newWorkflow(db)

	err := w.Handle(ctx, imposter.ID, n, true, notify.HandleData{})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("handle as other user: got %v, want forbidden", err)
	}

	// The failed handle must not have mutated league membership.
	got, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("loading league: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("league gained %d members from a forbidden handle", len(got.Members))
	}
}

func TestHandle_ConfirmJoinsLeague(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	moderator := f.CreateUser(ctx, "Mod")
	f.AddLeagueModerator(ctx, league.ID, moderator.ID)
	invitee := f.CreateUser(ctx, "Alice")
	n := f.CreateNotification(ctx, invitee.ID, models.NotificationIndLeagueInvite,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	w := newWorkflow(db)

	if err := w.Handle(ctx, invitee.ID, n, true, notify.HandleData{}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	got, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("loading league: %v", err)
	}
	if !got.Members.HasActive(invitee.ID) {
		t.Error("invitee should be an active league member after confirm")
	}

	// Moderators are told about the join.
	count, err := db.Collection("notifications").CountDocuments(ctx, bson.M{
		"user._id": moderator.ID,
		"type":     models.NotificationJoinedLeague,
	})
	if err != nil {
		t.Fatalf("counting joined notifications: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d joinedLeague notifications for the moderator, want 1", count)
	}
}

func TestHandle_InformationalIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	user := f.CreateUser(ctx, "Alice")
	n := f.CreateNotification(ctx, user.ID, models.NotificationJoinedLeague,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	w := newWorkflow(db)

	if err := w.Handle(ctx, user.ID, n, true, notify.HandleData{}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	got, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("loading league: %v", err)
	}
	if len(got.Members) != 0 {
		t.Error("informational notification must not create membership")
	}
}

func TestHandle_UnknownTypeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	user := f.CreateUser(ctx, "Alice")
	n := f.CreateNotification(ctx, user.ID, models.NotificationType("mystery"),
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	w := newWorkflow(db)

	err := w.Handle(ctx, user.ID, n, true, notify.HandleData{})
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Fatalf("unknown type: got %v, want bad request", err)
	}
}
