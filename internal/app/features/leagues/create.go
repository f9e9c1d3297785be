// internal/app/features/leagues/create.go
package leagues

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/CCRProject300/kudoshub/internal/app/system/httpjson"
	"github.com/CCRProject300/kudoshub/internal/app/system/sanitize"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

type createLeagueRequest struct {
	Name        string   `json:"name"`
	LeagueType  string   `json:"leagueType"`
	TeamSize    *int     `json:"teamSize"`
	MinTeamSize int      `json:"minTeamSize"`
	Panels      []string `json:"panels"`
	CompanyID   string   `json:"companyId"`
}

// HandleCreate creates a league. Private leagues may be created by any
// user, corporate leagues by a moderator of the owning company, public
// leagues by an admin. The creator becomes the league's first moderator
// and member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createLeagueRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		httpjson.Fail(w, http.StatusBadRequest, "name is required")
		return
	}
	leagueType := req.LeagueType
	if leagueType == "" {
		leagueType = models.LeagueTypePrivate
	}
	switch leagueType {
	case models.LeagueTypePrivate, models.LeagueTypeCorporate, models.LeagueTypePublic:
	default:
		httpjson.Fail(w, http.StatusBadRequest, "unknown league type")
		return
	}
	if req.TeamSize != nil && *req.TeamSize < 1 {
		httpjson.Fail(w, http.StatusBadRequest, "teamSize must be at least 1")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var company models.Company
	switch leagueType {
	case models.LeagueTypePublic:
		if !auth.HasRole(r, models.RoleAdmin) {
			httpjson.Fail(w, http.StatusForbidden, "only admins can create public leagues")
			return
		}
	case models.LeagueTypeCorporate:
		companyID, err := primitive.ObjectIDFromHex(req.CompanyID)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "companyId is required for corporate leagues")
			return
		}
		company, err = h.Companies.GetByID(ctx, companyID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusNotFound, "company not found")
			return
		}
		if err != nil {
			h.Log.Error("loading company for league create", zap.Error(err))
			httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		isMod, err := h.Companies.IsModerator(ctx, company.ID, userID)
		if err != nil {
			h.Log.Error("checking company moderator", zap.Error(err))
			httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !isMod {
			httpjson.Fail(w, http.StatusForbidden, "only company moderators can create corporate leagues")
			return
		}
	}

	league := models.League{
		Name:        name,
		LeagueType:  leagueType,
		TeamSize:    req.TeamSize,
		MinTeamSize: req.MinTeamSize,
	}
	league, err := h.Leagues.Create(ctx, league)
	if err != nil {
		h.Log.Error("creating league", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	panelNames := req.Panels
	if len(panelNames) == 0 && !league.Individual() && leagueType != models.LeagueTypePublic {
		// Group leagues need at least one panel to allocate teams into;
		// public leagues get per-company panels lazily.
		panelNames = []string{name}
	}
	for _, pn := range panelNames {
		pn = sanitize.Text(pn)
		if pn == "" {
			continue
		}
		panel, err := h.Panels.Create(ctx, models.Panel{Name: pn})
		if err != nil {
			h.Log.Error("creating panel", zap.Error(err))
			httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := h.Leagues.AddPanelRef(ctx, league.ID, panel.ID); err != nil {
			h.Log.Error("linking panel", zap.Error(err))
			httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		league.Panel = append(league.Panel, models.PanelRef{PanelID: panel.ID})
	}

	if err := h.Leagues.UpsertModerator(ctx, league.ID, userID, true, true); err != nil {
		h.Log.Error("adding creator as moderator", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.Leagues.UpsertMember(ctx, league.ID, userID, true, true); err != nil {
		h.Log.Error("adding creator as member", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if leagueType == models.LeagueTypeCorporate {
		if err := h.Companies.AddLeagueRef(ctx, company.ID, league.ID); err != nil {
			h.Log.Error("linking league to company", zap.Error(err))
			httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	h.Log.Info("created league",
		zap.String("leagueId", league.ID.Hex()),
		zap.String("leagueType", leagueType),
		zap.String("userId", userID.Hex()))
	httpjson.Created(w, league)
}
