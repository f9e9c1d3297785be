// internal/app/features/leagues/join.go
package leagues

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
)

type joinLeagueRequest struct {
	PanelID string `json:"panelId"`
}

// HandleJoin joins the caller to a league directly, with no invitation.
// Individual leagues take no panel; group leagues allocate a team, which
// needs a panelId except on public leagues where the company panel is
// resolved automatically.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
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

	var req joinLeagueRequest
	if r.ContentLength > 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	var panelID *primitive.ObjectID
	if req.PanelID != "" {
		id, err := primitive.ObjectIDFromHex(req.PanelID)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid panel id")
			return
		}
		panelID = &id
	}

	var err error
	if league.Individual() {
		err = h.Joins.JoinIndividualLeague(ctx, league.ID, userID, true)
	} else {
		err = h.Joins.JoinGroupLeague(ctx, league.ID, userID, panelID, true)
	}
	if err != nil {
		httpjson.Error(w, err)
		return
	}

	h.Log.Info("user joined league",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("userId", userID.Hex()))
	httpjson.NoContent(w)
}
