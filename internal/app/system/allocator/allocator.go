// Package allocator places league members into teams.
//
// Allocation is first-fit in the panel's team list order: the first team
// with spare capacity wins. When no team has room a new one is created and
// appended to the panel. Leaving empties are destroyed so frequent
// switching cannot accumulate dead teams.
package allocator

import (
	"context"
	"errors"
	"fmt"
	"time"

	panelstore "github.com/CCRProject300/kudoshub/internal/app/store/panels"
	teamstore "github.com/CCRProject300/kudoshub/internal/app/store/teams"
	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Allocator struct {
	panels *panelstore.Store
	teams  *teamstore.Store
	log    *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Allocator {
	return &Allocator{
		panels: panelstore.New(db),
		teams:  teamstore.New(db),
		log:    logger,
	}
}

// GetOrCreateTeam adds the user to a team in the given panel of the league,
// creating a team when none has spare capacity, and returns the team the
// user joined.
func (a *Allocator) GetOrCreateTeam(ctx context.Context, league models.League, panelID, userID primitive.ObjectID, active bool) (models.Team, error) {
	panel, err := a.panels.GetByID(ctx, panelID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Team{}, apperr.Wrap(apperr.KindNotFound, "panel not found", err)
	}
	if err != nil {
		return models.Team{}, err
	}

	teams, err := a.teams.ListByIDs(ctx, panel.TeamIDs())
	if err != nil {
		return models.Team{}, err
	}

	team, found := firstWithSpace(teams, league.TeamSizeValue())
	if !found {
		team, err = a.createTeam(ctx, league, panel, len(teams))
		if err != nil {
			return models.Team{}, err
		}
	}

	if err := a.addMember(ctx, team, panel.ID, userID, active); err != nil {
		return models.Team{}, err
	}
	return team, nil
}

// JoinTeam adds the user to a specific, already-resolved team.
func (a *Allocator) JoinTeam(ctx context.Context, team models.Team, userID primitive.ObjectID, active bool) error {
	return a.addMember(ctx, team, team.Panel.ID, userID, active)
}

// LeaveTeam removes the user from the team. A team emptied by the
// departure is removed from its panel and hard-deleted; otherwise the
// member entry is pulled and memberCount decremented.
func (a *Allocator) LeaveTeam(ctx context.Context, team models.Team, userID primitive.ObjectID) error {
	if len(team.Members) <= 1 {
		if err := a.panels.RemoveTeamRef(ctx, team.Panel.ID, team.ID); err != nil {
			return err
		}
		if err := a.teams.Delete(ctx, team.ID); err != nil {
			return err
		}
		a.log.Info("destroyed empty team",
			zap.String("teamId", team.ID.Hex()),
			zap.String("panelId", team.Panel.ID.Hex()))
	} else {
		if err := a.teams.RemoveMember(ctx, team.ID, userID); err != nil {
			return err
		}
	}
	return a.panels.RemoveMember(ctx, team.Panel.ID, userID)
}

// firstWithSpace returns the first team under capacity, in the panel's team
// list order. An empty list never satisfies the search.
func firstWithSpace(teams []models.Team, teamSize int) (models.Team, bool) {
	for _, t := range teams {
		if len(t.Members) < teamSize {
			return t, true
		}
	}
	return models.Team{}, false
}

func (a *Allocator) createTeam(ctx context.Context, league models.League, panel models.Panel, existing int) (models.Team, error) {
	team := models.Team{
		Name:       fmt.Sprintf("Team %d - %s", existing+1, panel.Name),
		Members:    models.MemberList{},
		Moderators: league.Moderators,
		Panel:      models.TeamPanel{ID: panel.ID, Name: panel.Name},
	}
	team, err := a.teams.Create(ctx, team)
	if err != nil {
		return models.Team{}, err
	}
	if err := a.panels.AddTeamRef(ctx, panel.ID, team.ID); err != nil {
		return models.Team{}, err
	}
	a.log.Info("created team",
		zap.String("teamId", team.ID.Hex()),
		zap.String("name", team.Name),
		zap.String("panelId", panel.ID.Hex()))
	return team, nil
}

func (a *Allocator) addMember(ctx context.Context, team models.Team, panelID, userID primitive.ObjectID, active bool) error {
	member := models.Member{
		User:      userID,
		Active:    active,
		Activated: true,
		StartDate: time.Now().UTC(),
	}
	if err := a.teams.AddMember(ctx, team.ID, member); err != nil {
		return err
	}
	return a.panels.AddMember(ctx, panelID, userID)
}
