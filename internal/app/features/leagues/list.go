// internal/app/features/leagues/list.go
package leagues

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/policy/leaguepolicy"
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

// HandleList returns all live leagues.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leagues, err := h.Leagues.List(ctx)
	if err != nil {
		h.Log.Error("listing leagues", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if leagues == nil {
		leagues = []models.League{}
	}
	httpjson.OK(w, leagues)
}

// HandleListMine returns the leagues the caller holds a membership entry
// in, pending invitations included.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leagues, err := h.Leagues.ListByMember(ctx, userID)
	if err != nil {
		h.Log.Error("listing member leagues", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if leagues == nil {
		leagues = []models.League{}
	}
	httpjson.OK(w, leagues)
}

// HandleView returns one league; callers must pass the membership check.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	league, ok := h.loadLeague(ctx, w, r)
	if !ok {
		return
	}

	isMember, err := leaguepolicy.IsMember(ctx, h.DB, league, userID)
	if err != nil {
		h.Log.Error("checking league membership", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !isMember {
		httpjson.Fail(w, http.StatusForbidden, "not a member of this league")
		return
	}
	httpjson.OK(w, league)
}

// loadLeague resolves the {id} URL param to a live league, writing the
// error response itself when that fails.
func (h *Handler) loadLeague(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.League, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid league id")
		return models.League{}, false
	}
	league, err := h.Leagues.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Fail(w, http.StatusNotFound, "league not found")
		return models.League{}, false
	}
	if err != nil {
		h.Log.Error("loading league", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return models.League{}, false
	}
	return league, true
}
