// Package switcher moves a confirmed league member between teams and
// panels: vacate the old team (destroying it when emptied), then join the
// destination. League-level membership is untouched.
package switcher

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	panelstore "github.com/CCRProject300/kudoshub/internal/app/store/panels"
	teamstore "github.com/CCRProject300/kudoshub/internal/app/store/teams"
	"github.com/CCRProject300/kudoshub/internal/app/system/allocator"
	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/app/system/txn"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

type Engine struct {
	db     *mongo.Database
	panels *panelstore.Store
	teams  *teamstore.Store
	alloc  *allocator.Allocator
	log    *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		panels: panelstore.New(db),
		teams:  teamstore.New(db),
		alloc:  allocator.New(db, logger),
		log:    logger,
	}
}

// Switch moves the user to the given team, or to a team in the given panel
// chosen by the allocator. Exactly one of teamID/panelID drives the
// destination; teamID wins when both are set. Public leagues disallow
// switching, team assignment there follows the company panel.
func (e *Engine) Switch(ctx context.Context, league models.League, userID primitive.ObjectID, teamID, panelID *primitive.ObjectID) error {
	if league.LeagueType == models.LeagueTypePublic {
		return apperr.Forbidden("cannot switch teams in a public league")
	}
	if !league.Members.HasActivated(userID) {
		return apperr.Forbidden("not a member of this league")
	}
	if teamID == nil && panelID == nil {
		return apperr.BadRequest("teamId or panelId is required")
	}
	if teamID == nil && !league.HasPanel(*panelID) {
		return apperr.NotFound("panel not found in this league")
	}

	current, err := e.currentTeam(ctx, league, userID)
	if err != nil {
		return err
	}

	return txn.WithTransaction(ctx, e.db.Client(), e.log, func(ctx context.Context) error {
		if teamID != nil {
			target, err := e.teams.GetByID(ctx, *teamID)
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apperr.Wrap(apperr.KindNotFound, "team not found", err)
			}
			if err != nil {
				return err
			}
			// The target must sit in one of this league's panels; a team id
			// from another league would bypass that league's capacity rules.
			if !league.HasPanel(target.Panel.ID) {
				return apperr.NotFound("team not found in this league")
			}
			if target.ID == current.ID {
				return apperr.Conflict("already a member of this team")
			}
			if len(target.Members) >= league.TeamSizeValue() {
				return apperr.Conflict("team is already full")
			}
			if err := e.alloc.LeaveTeam(ctx, current, userID); err != nil {
				return err
			}
			return e.alloc.JoinTeam(ctx, target, userID, true)
		}

		if err := e.alloc.LeaveTeam(ctx, current, userID); err != nil {
			return err
		}
		_, err := e.alloc.GetOrCreateTeam(ctx, league, *panelID, userID, true)
		return err
	})
}

// Leave removes the user from whichever team they occupy in the league,
// without touching league membership.
func (e *Engine) Leave(ctx context.Context, league models.League, userID primitive.ObjectID) error {
	current, err := e.currentTeam(ctx, league, userID)
	if err != nil {
		return err
	}
	return e.alloc.LeaveTeam(ctx, current, userID)
}

// currentTeam scans the teams of every panel in the league for the one
// holding the user.
func (e *Engine) currentTeam(ctx context.Context, league models.League, userID primitive.ObjectID) (models.Team, error) {
	panels, err := e.panels.ListByIDs(ctx, league.PanelIDs())
	if err != nil {
		return models.Team{}, err
	}
	var teamIDs []primitive.ObjectID
	for _, p := range panels {
		teamIDs = append(teamIDs, p.TeamIDs()...)
	}
	teams, err := e.teams.ListByIDs(ctx, teamIDs)
	if err != nil {
		return models.Team{}, err
	}
	for _, t := range teams {
		if t.Members.Contains(userID) {
			return t, nil
		}
	}
	return models.Team{}, apperr.NotFound("not a member of a team in this league")
}
