// Package joins orchestrates joining leagues and companies: eligibility
// checks, the lazy company panel on public leagues, team allocation, and
// role/name propagation onto the user document.
package joins

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	companystore "github.com/CCRProject300/kudoshub/internal/app/store/companies"
	leaguestore "github.com/CCRProject300/kudoshub/internal/app/store/leagues"
	panelstore "github.com/CCRProject300/kudoshub/internal/app/store/panels"
	userstore "github.com/CCRProject300/kudoshub/internal/app/store/users"
	"github.com/CCRProject300/kudoshub/internal/app/system/allocator"
	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/app/system/txn"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

type Engine struct {
	db        *mongo.Database
	leagues   *leaguestore.Store
	panels    *panelstore.Store
	companies *companystore.Store
	users     *userstore.Store
	alloc     *allocator.Allocator
	log       *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Engine {
	return &Engine{
		db:        db,
		leagues:   leaguestore.New(db),
		panels:    panelstore.New(db),
		companies: companystore.New(db),
		users:     userstore.New(db),
		alloc:     allocator.New(db, logger),
		log:       logger,
	}
}

// JoinIndividualLeague records league membership for the user. confirm
// controls the entry's active flag; the entry is always marked activated,
// so a reject still closes out the invitation.
func (e *Engine) JoinIndividualLeague(ctx context.Context, leagueID, userID primitive.ObjectID, confirm bool) error {
	league, err := e.fetchJoinable(ctx, leagueID, userID)
	if err != nil {
		return err
	}

	if league.LeagueType == models.LeagueTypePublic {
		ok, err := e.companies.HasActiveMembership(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Forbidden("public leagues require an active company membership")
		}
	}

	return e.leagues.UpsertMember(ctx, leagueID, userID, confirm, true)
}

// JoinGroupLeague records league membership and, when the league plays in
// teams and the user is confirming, places the user into a team. On public
// leagues with no panel supplied the user's company panel is resolved or
// created. Membership and team assignment run in one transaction where the
// server supports it.
func (e *Engine) JoinGroupLeague(ctx context.Context, leagueID, userID primitive.ObjectID, panelID *primitive.ObjectID, confirm bool) error {
	league, err := e.fetchJoinable(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if panelID != nil && !league.HasPanel(*panelID) {
		return apperr.NotFound("panel not found in this league")
	}

	return txn.WithTransaction(ctx, e.db.Client(), e.log, func(ctx context.Context) error {
		pid := panelID
		if league.LeagueType == models.LeagueTypePublic && pid == nil {
			resolved, err := e.companyPanel(ctx, league, userID)
			if err != nil {
				return err
			}
			pid = &resolved
		}

		if league.TeamSizeValue() > 1 && confirm {
			if pid == nil {
				return apperr.BadRequest("panelId is required to join this league")
			}
			if _, err := e.alloc.GetOrCreateTeam(ctx, league, *pid, userID, confirm); err != nil {
				return err
			}
		}

		// League membership is the canonical joined/invited record and is
		// kept regardless of whether a team was allocated.
		return e.leagues.UpsertMember(ctx, leagueID, userID, confirm, true)
	})
}

// JoinCompany records company membership and, on confirm, copies the
// company's display name and default roles onto the user document. A reject
// only closes out the invitation entry.
func (e *Engine) JoinCompany(ctx context.Context, companyID, userID primitive.ObjectID, confirm bool) error {
	company, err := e.companies.GetByID(ctx, companyID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Wrap(apperr.KindNotFound, "company not found", err)
	}
	if err != nil {
		return err
	}
	if company.Members.HasActivated(userID) {
		return apperr.Conflict("already a member of this company")
	}

	if err := e.companies.UpsertMember(ctx, companyID, userID, confirm, true); err != nil {
		return err
	}
	if !confirm {
		return nil
	}
	return e.propagateCompany(ctx, userID, company, nil)
}

// JoinCompanyAsCorpMod is JoinCompany for the moderator invitation path;
// on confirm the corporate_mod role is granted alongside the company's
// default roles. A reject grants nothing.
func (e *Engine) JoinCompanyAsCorpMod(ctx context.Context, companyID, userID primitive.ObjectID, confirm bool) error {
	company, err := e.companies.GetByID(ctx, companyID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Wrap(apperr.KindNotFound, "company not found", err)
	}
	if err != nil {
		return err
	}
	if company.Moderators.HasActivated(userID) {
		return apperr.Conflict("already a moderator of this company")
	}

	if err := e.companies.UpsertModerator(ctx, companyID, userID, confirm, true); err != nil {
		return err
	}
	if err := e.companies.UpsertMember(ctx, companyID, userID, confirm, true); err != nil {
		return err
	}
	if !confirm {
		return nil
	}
	return e.propagateCompany(ctx, userID, company, []string{models.RoleCorpMod})
}

// fetchJoinable loads the league and rejects duplicate activations up
// front, so both join paths share the not-found and conflict behavior.
func (e *Engine) fetchJoinable(ctx context.Context, leagueID, userID primitive.ObjectID) (models.League, error) {
	league, err := e.leagues.GetByID(ctx, leagueID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.League{}, apperr.Wrap(apperr.KindNotFound, "league not found", err)
	}
	if err != nil {
		return models.League{}, err
	}
	if league.Members.HasActivated(userID) {
		return models.League{}, apperr.Conflict("already a member of this league")
	}
	return league, nil
}

// companyPanel finds the panel for the user's company among the league's
// panels, preferring the recorded companyId and falling back to a folded
// name match for documents that predate the id. Creates and links the
// panel when none matches.
func (e *Engine) companyPanel(ctx context.Context, league models.League, userID primitive.ObjectID) (primitive.ObjectID, error) {
	company, err := e.companies.FindMemberCompany(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, apperr.Wrap(apperr.KindForbidden, "public leagues require an active company membership", err)
	}
	if err != nil {
		return primitive.NilObjectID, err
	}

	panels, err := e.panels.ListByIDs(ctx, league.PanelIDs())
	if err != nil {
		return primitive.NilObjectID, err
	}
	for _, p := range panels {
		if p.CompanyID != nil && *p.CompanyID == company.ID {
			return p.ID, nil
		}
	}
	nameCI := text.Fold(company.Name)
	for _, p := range panels {
		if text.Fold(p.Name) == nameCI {
			return p.ID, nil
		}
	}

	panel, err := e.panels.Create(ctx, models.Panel{
		Name:      company.Name,
		CompanyID: &company.ID,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if err := e.leagues.AddPanelRef(ctx, league.ID, panel.ID); err != nil {
		return primitive.NilObjectID, err
	}
	e.log.Info("created company panel",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("panelId", panel.ID.Hex()),
		zap.String("companyId", company.ID.Hex()))
	return panel.ID, nil
}

func (e *Engine) propagateCompany(ctx context.Context, userID primitive.ObjectID, company models.Company, extraRoles []string) error {
	if err := e.users.SetCompanyName(ctx, userID, company.Name); err != nil {
		return err
	}
	roles := append(append([]string{}, company.Roles...), extraRoles...)
	return e.users.GrantRoles(ctx, userID, roles...)
}
