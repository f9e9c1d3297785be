// internal/app/features/notifications/handle.go
package notifications

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
	"github.com/CCRProject300/kudoshub/internal/app/system/notify"
	"github.com/CCRProject300/kudoshub/internal/app/system/timeouts"
	"github.com/CCRProject300/kudoshub/internal/domain/models"
)

// HandleList returns the caller's pending notifications, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notifications, err := h.Notifications.ListPendingForUser(ctx, userID)
	if err != nil {
		h.Log.Error("listing notifications", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	httpjson.OK(w, notifications)
}

type handleRequest struct {
	PanelID string `json:"panelId"`
}

// HandleConfirm acts on a pending notification: the invite's join is
// dispatched, then the notification is marked redeemed. A failed dispatch
// leaves it pending.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

// HandleReject declines a pending notification and marks it redeemed.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, confirm bool) {
	userID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	var req handleRequest
	if r.ContentLength > 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	var data notify.HandleData
	if req.PanelID != "" {
		pid, err := primitive.ObjectIDFromHex(req.PanelID)
		if err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid panel id")
			return
		}
		data.PanelID = &pid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	notification, err := h.Notifications.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Fail(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("loading notification", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !notification.Pending() {
		httpjson.Fail(w, http.StatusConflict, "notification already redeemed")
		return
	}

	if err := h.Workflow.Handle(ctx, userID, notification, confirm, data); err != nil {
		httpjson.Error(w, err)
		return
	}

	// Redeem only after the dispatch succeeded so failures stay actionable.
	if err := h.Notifications.MarkRedeemed(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusConflict, "notification already redeemed")
			return
		}
		h.Log.Error("marking notification redeemed", zap.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("notification handled",
		zap.String("notificationId", id.Hex()),
		zap.String("type", string(notification.Type)),
		zap.Bool("confirm", confirm))
	httpjson.NoContent(w)
}
