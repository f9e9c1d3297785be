// internal/app/features/leagues/invite.go
package leagues

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/policy/leaguepolicy"
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
)

type inviteRequest struct {
	UserIDs []string `json:"userIds"`
	Message string   `json:"message"`
}

// parseUserIDs converts and de-duplicates the request's user id strings.
func parseUserIDs(raw []string) ([]primitive.ObjectID, bool) {
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}

// HandleInvite sends league invitations to a list of users. Moderators
// only. Re-inviting a user with a pending invite replaces it rather than
// duplicating.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
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

	var req inviteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	targetIDs, ok := parseUserIDs(req.UserIDs)
	if !ok {
		httpjson.Fail(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if len(targetIDs) == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "userIds is required")
		return
	}

	isMod, err := leaguepolicy.IsModerator(ctx, h.DB, league, userID)
	if err != nil {
		h.Log.Error("checking league moderator", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !isMod {
		httpjson.Fail(w, http.StatusForbidden, "only moderators can invite to a league")
		return
	}

	if err := h.Workflow.InviteToLeague(ctx, league, targetIDs, req.Message); err != nil {
		h.Log.Error("sending league invites", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("sent league invites",
		zap.String("leagueId", league.ID.Hex()),
		zap.Int("count", len(targetIDs)))
	httpjson.NoContent(w)
}
