// internal/app/features/companies/join.go
package companies

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
)

// HandleJoin joins the caller to a company directly, with no invitation.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Joins.JoinCompany(ctx, companyID, userID, true); err != nil {
		httpjson.Error(w, err)
		return
	}

	h.Log.Info("user joined company",
		zap.String("companyId", companyID.Hex()),
		zap.String("userId", userID.Hex()))
	httpjson.NoContent(w)
}
