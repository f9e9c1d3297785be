package notifications_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	notificationsfeature "github.com/CCRProject300/kudoshub/internal/app/features/notifications"
	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	notificationstore "github.com/CCRProject300/kudoshub/internal/app/store/notifications"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/mailer"
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"github.com/CCRProject300/kudoshub/internal/testutil"
)

func TestHandleConfirm_RedeemsAndJoins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	logger := zap.NewNop()
	workflow := notify.New(db, joins.New(db, logger), mailer.Discard{}, "http://localhost:3000", logger)
	handler := notificationsfeature.NewHandler(db, logger, workflow)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	user := f.CreateUser(ctx, "Alice")
	n := f.CreateNotification(ctx, user.ID, models.NotificationIndLeagueInvite,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	req := testutil.AuthedRequest(http.MethodPost, "/notifications/"+n.ID.Hex()+"/confirm", "", user.ID)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()

	handler.HandleConfirm(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	got, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("loading league: %v", err)
	}
	if !got.Members.HasActive(user.ID) {
		t.Error("user should be an active league member after confirm")
	}

	stored, err := notificationstore.New(db).GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("loading notification: %v", err)
	}
	if stored.RedeemedAt == nil {
		t.Error("notification should be redeemed after a successful confirm")
	}
}

func TestHandleConfirm_OtherUsersNotificationForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	logger := zap.NewNop()
	workflow := notify.New(db, joins.New(db, logger), mailer.Discard{}, "http://localhost:3000", logger)
	handler := notificationsfeature.NewHandler(db, logger, workflow)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	invitee := f.CreateUser(ctx, "Alice")
	imposter := f.CreateUser(ctx, "Mallory")
	n := f.CreateNotification(ctx, invitee.ID, models.NotificationIndLeagueInvite,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	req := testutil.AuthedRequest(http.MethodPost, "/notifications/"+n.ID.Hex()+"/confirm", "", imposter.ID)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()

	handler.HandleConfirm(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	stored, err := notificationstore.New(db).GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("loading notification: %v", err)
	}
	if stored.RedeemedAt != nil {
		t.Error("notification must stay pending after a forbidden confirm")
	}
}

func TestHandleReject_RedeemsWithoutActivating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	logger := zap.NewNop()
	workflow := notify.New(db, joins.New(db, logger), mailer.Discard{}, "http://localhost:3000", logger)
	handler := notificationsfeature.NewHandler(db, logger, workflow)

	league := f.CreateLeague(ctx, "Solo Steps", models.LeagueTypePrivate, 0)
	user := f.CreateUser(ctx, "Alice")
	n := f.CreateNotification(ctx, user.ID, models.NotificationIndLeagueInvite,
		models.NotificationGroup{ID: league.ID, Name: league.Name})

	req := testutil.AuthedRequest(http.MethodPost, "/notifications/"+n.ID.Hex()+"/reject", "", user.ID)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()

	handler.HandleReject(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	got, err := leaguestore.New(db).GetByID(ctx, league.ID)
	if err != nil {
		t.Fatalf("loading league: %v", err)
	}
	m := got.Members.Find(user.ID)
	if m == nil || m.Active {
		t.Errorf("after reject: got %+v, want an inactive entry", m)
	}
}
