// internal/app/features/leagues/switch.go
package leagues

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
)

type switchTeamRequest struct {
	TeamID  string `json:"teamId"`
	PanelID string `json:"panelId"`
}

// HandleSwitch moves the caller to another team or panel within the
// league.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	league, ok := h.loadLeague(ctx, w, r)
	if !ok {
		return
	}

	var req switchTeamRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var teamID, panelID *primitive.ObjectID
	if req.TeamID != "" {
		id, err := primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid team id")
			return
		}
		teamID = &id
	}
	if req.PanelID != "" {
		id, err := primitive.ObjectIDFromHex(req.PanelID)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid panel id")
			return
		}
		panelID = &id
	}

	if err := h.Switcher.Switch(ctx, league, userID, teamID, panelID); err != nil {
		httpjson.Error(w, err)
		return
	}

	h.Log.Info("user switched team",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("userId", userID.Hex()))
	httpjson.NoContent(w)
}

// HandleLeave removes the caller from the league: team first (when the
// league plays in teams), then the league membership entry itself.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	league, ok := h.loadLeague(ctx, w, r)
	if !ok {
		return
	}

	if !league.Individual() {
		err := h.Switcher.Leave(ctx, league, userID)
		// Pending invitees hold a membership entry but no team.
		if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
			httpjson.Error(w, err)
			return
		}
	}
	if err := h.Leagues.RemoveMember(ctx, league.ID, userID); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			httpjson.Error(w, err)
			return
		}
		h.Log.Error("removing league member", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("user left league",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("userId", userID.Hex()))
	httpjson.NoContent(w)
}
