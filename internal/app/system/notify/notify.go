// Package notify implements the notification workflow: bulk invite
// creation with idempotent upserts and best-effort email, and the
// confirm/reject dispatch into the join engine.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	notificationstore "github.com/CCRProject300/kudoshub/internal/app/store/notifications"
	userstore "github.com/CCRProject300/kudoshub/internal/app/store/users"
	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/app/system/joins"
	"github.com/CCRProject300/kudoshub/internal/app/system/mailer"
	"github.com/CCRProject300/kudoshub/internal/app/system/sanitize"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

// HandleData carries caller-supplied parameters for the dispatch, currently
// only the panel choice on group league invites.
type HandleData struct {
	PanelID *primitive.ObjectID
}

type Workflow struct {
	notifications *notificationstore.Store
	leagues       *leaguestore.Store
	users         *userstore.Store
	joins         *joins.Engine
	mail          mailer.Sender
	baseURL       string
	log           *zap.Logger
}

func New(db *mongo.Database, j *joins.Engine, mail mailer.Sender, baseURL string, logger *zap.Logger) *Workflow {
	return &Workflow{
		notifications: notificationstore.New(db),
		leagues:       leaguestore.New(db),
		users:         userstore.New(db),
		joins:         j,
		mail:          mail,
		baseURL:       baseURL,
		log:           logger,
	}
}

// Handle dispatches a confirm or reject on a pending notification. Only the
// addressed user may act; the caller marks the notification redeemed after
// Handle succeeds, so a failed dispatch leaves it pending.
func (w *Workflow) Handle(ctx context.Context, userID primitive.ObjectID, n models.Notification, confirm bool, data HandleData) error {
	if n.User.ID != userID {
		return apperr.Forbidden("notification belongs to another user")
	}

	switch n.Type {
	case models.NotificationIndLeagueInvite:
		if err := w.joins.JoinIndividualLeague(ctx, n.Group.ID, userID, confirm); err != nil {
			return err
		}
	case models.NotificationGroupLeagueInvite:
		panelID := data.PanelID
		if panelID == nil && len(n.Panels) == 1 {
			panelID = &n.Panels[0].PanelID
		}
		if err := w.joins.JoinGroupLeague(ctx, n.Group.ID, userID, panelID, confirm); err != nil {
			return err
		}
	case models.NotificationCompanyInvite:
		return w.joins.JoinCompany(ctx, n.Group.ID, userID, confirm)
	case models.NotificationCorpModInvite:
		return w.joins.JoinCompanyAsCorpMod(ctx, n.Group.ID, userID, confirm)
	case models.NotificationJoinedLeague, models.NotificationOnboarding,
		models.NotificationMissingStats, models.NotificationDisconnectedMethod:
		// Informational; redeeming is the whole action.
		return nil
	default:
		return apperr.BadRequest(fmt.Sprintf("unknown notification type %q", n.Type))
	}

	if confirm {
		w.notifyJoined(ctx, n.Group.ID, userID)
	}
	return nil
}

// InviteToLeague creates one pending invite per target user, keyed so a
// re-invite replaces the pending record rather than duplicating it. Emails
// go to users who opted in; email failures are logged and never fail the
// batch.
func (w *Workflow) InviteToLeague(ctx context.Context, league models.League, targetIDs []primitive.ObjectID, message string) error {
	typ := models.NotificationGroupLeagueInvite
	if league.Individual() {
		typ = models.NotificationIndLeagueInvite
	}

	var panels []models.PanelRef
	if typ == models.NotificationGroupLeagueInvite {
		panels = league.Panel
	}

	n := models.Notification{
		Type:     typ,
		Group:    models.NotificationGroup{ID: league.ID, Name: league.Name},
		Messages: buildMessages(message),
		Panels:   panels,
	}
	subject := fmt.Sprintf("You have been invited to join %s", league.Name)
	return w.sendInvites(ctx, n, targetIDs, models.EmailPrefLeagues, subject)
}

// InviteToCompany creates company membership invites.
func (w *Workflow) InviteToCompany(ctx context.Context, company models.Company, targetIDs []primitive.ObjectID, message string) error {
	n := models.Notification{
		Type:     models.NotificationCompanyInvite,
		Group:    models.NotificationGroup{ID: company.ID, Name: company.Name},
		Messages: buildMessages(message),
	}
	subject := fmt.Sprintf("You have been invited to join %s", company.Name)
	return w.sendInvites(ctx, n, targetIDs, models.EmailPrefCompany, subject)
}

// InviteCorpMods creates moderator invites for a company.
func (w *Workflow) InviteCorpMods(ctx context.Context, company models.Company, targetIDs []primitive.ObjectID, message string) error {
	n := models.Notification{
		Type:     models.NotificationCorpModInvite,
		Group:    models.NotificationGroup{ID: company.ID, Name: company.Name},
		Messages: buildMessages(message),
	}
	subject := fmt.Sprintf("You have been invited to moderate %s", company.Name)
	return w.sendInvites(ctx, n, targetIDs, models.EmailPrefCompany, subject)
}

func (w *Workflow) sendInvites(ctx context.Context, proto models.Notification, targetIDs []primitive.ObjectID, emailPref, subject string) error {
	for _, id := range targetIDs {
		n := proto
		n.User = models.NotificationUser{ID: id}
		if err := w.notifications.UpsertPending(ctx, n); err != nil {
			return err
		}
	}

	users, err := w.users.ListByIDs(ctx, targetIDs)
	if err != nil {
		// Notifications are persisted; email resolution failing is not
		// worth failing the batch for.
		w.log.Error("resolving invite recipients for email", zap.Error(err))
		return nil
	}
	for _, u := range users {
		if !u.WantsEmail(emailPref) || u.Email == "" {
			continue
		}
		body := fmt.Sprintf("%s\n\nView your invitations at %s/notifications.", subject, w.baseURL)
		err := w.mail.Send(ctx, mailer.Email{
			To:       u.Email,
			ToName:   u.FirstName + " " + u.LastName,
			Subject:  subject,
			TextBody: body,
		})
		if err != nil {
			w.log.Error("sending invite email",
				zap.String("userId", u.ID.Hex()),
				zap.Error(err))
		}
	}
	return nil
}

// notifyJoined tells the league's moderators that an invitee confirmed.
// Best-effort, never fails the join that triggered it.
func (w *Workflow) notifyJoined(ctx context.Context, leagueID, joinedUserID primitive.ObjectID) {
	league, err := w.leagues.GetByID(ctx, leagueID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			w.log.Error("loading league for joined notification", zap.Error(err))
		}
		return
	}
	joined, err := w.users.GetByID(ctx, joinedUserID)
	if err != nil {
		w.log.Error("loading user for joined notification", zap.Error(err))
		return
	}

	text := fmt.Sprintf("%s %s has joined %s", joined.FirstName, joined.LastName, league.Name)
	for _, m := range league.Moderators {
		if !m.Activated || m.User == joinedUserID {
			continue
		}
		n := models.Notification{
			User:     models.NotificationUser{ID: m.User},
			Type:     models.NotificationJoinedLeague,
			Group:    models.NotificationGroup{ID: league.ID, Name: league.Name},
			Messages: buildMessages(text),
		}
		if err := w.notifications.UpsertPending(ctx, n); err != nil {
			w.log.Error("writing joined notification",
				zap.String("moderatorId", m.User.Hex()),
				zap.Error(err))
		}
	}
}

func buildMessages(message string) []models.NotificationMessage {
	message = sanitize.Text(message)
	if message == "" {
		return []models.NotificationMessage{}
	}
	return []models.NotificationMessage{{
		ID:        uuid.NewString(),
		Text:      message,
		CreatedAt: time.Now().UTC(),
	}}
}
