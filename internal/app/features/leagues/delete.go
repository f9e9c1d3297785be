// internal/app/features/leagues/delete.go
package leagues

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/policy/leaguepolicy"
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
)

// HandleDelete soft-deletes a league and withdraws its live invite
// notifications. Moderators only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	league, ok := h.loadLeague(ctx, w, r)
	if !ok {
		return
	}

	isMod, err := leaguepolicy.IsModerator(ctx, h.DB, league, userID)
	if err != nil {
		h.Log.Error("checking league moderator", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !isMod {
		httpjson.Fail(w, http.StatusForbidden, "only moderators can delete a league")
		return
	}

	if err := h.Leagues.SoftDelete(ctx, league.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusNotFound, "league not found")
			return
		}
		h.Log.Error("deleting league", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	withdrawn, err := h.Notifications.SoftDeleteByGroup(ctx, league.ID)
	if err != nil {
		h.Log.Error("withdrawing league notifications", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("deleted league",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("userId", userID.Hex()),
		zap.Int64("notificationsWithdrawn", withdrawn))
	httpjson.NoContent(w)
}
