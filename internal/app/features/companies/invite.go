// internal/app/features/companies/invite.go
package companies

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

type inviteRequest struct {
	UserIDs []string `json:"userIds"`
	Message string   `json:"message"`
}

// HandleInviteMembers sends company membership invitations. Moderators
// only.
func (h *Handler) HandleInviteMembers(w http.ResponseWriter, r *http.Request) {
	h.handleInvite(w, r, false)
}

// HandleInviteModerators sends corporate-moderator invitations.
// Moderators only.
func (h *Handler) HandleInviteModerators(w http.ResponseWriter, r *http.Request) {
	h.handleInvite(w, r, true)
}

func (h *Handler) handleInvite(w http.ResponseWriter, r *http.Request, asModerator bool) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	companyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var req inviteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	targetIDs := make([]primitive.ObjectID, 0, len(req.UserIDs))
	for _, s := range req.UserIDs {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid user id")
			return
		}
		targetIDs = append(targetIDs, id)
	}
	if len(targetIDs) == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "userIds is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var company models.Company
	company, err = h.Companies.GetByID(ctx, companyID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Fail(w, http.StatusNotFound, "company not found")
		return
	}
	if err != nil {
		h.Log.Error("loading company", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	isMod, err := h.Companies.IsModerator(ctx, companyID, userID)
	if err != nil {
		h.Log.Error("checking company moderator", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !isMod {
		httpjson.Fail(w, http.StatusForbidden, "only moderators can invite to a company")
		return
	}

	if asModerator {
		err = h.Workflow.InviteCorpMods(ctx, company, targetIDs, req.Message)
	} else {
		err = h.Workflow.InviteToCompany(ctx, company, targetIDs, req.Message)
	}
	if err != nil {
		h.Log.Error("sending company invites", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("sent company invites",
		zap.String("companyId", companyID.Hex()),
		zap.Bool("moderator", asModerator),
		zap.Int("count", len(targetIDs)))
	httpjson.NoContent(w)
}
