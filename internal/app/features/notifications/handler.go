package notifications

import (
	"context"
	"net/http"

	notificationstore "github.com/dalemusser/clubhub/internal/app/store/notifications"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultListLimit = 100

// Handler serves the signed-in user's notification inbox.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notificationstore.New(db),
		Log:           logger,
	}
}

// ServeList handles GET /me/notifications. Pass ?unread=true to exclude
// notifications already marked read.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	unreadOnly := r.URL.Query().Get("unread") == "true"
	list, err := h.Notifications.ListByUser(ctx, userID, unreadOnly, defaultListLimit)
	if err != nil {
		h.Log.Error("notifications: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}
	unread, err := h.Notifications.CountUnread(ctx, userID)
	if err != nil {
		h.Log.Error("notifications: unread count failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Unread:        unread,
		Notifications: toViews(list),
	})
}

// HandleMarkRead handles POST /me/notifications/{notificationID}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "notificationID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Notifications.MarkRead(ctx, userID, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("notifications: mark read failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update notification")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleMarkAllRead handles POST /me/notifications/read-all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		h.Log.Error("notifications: mark all read failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update notifications")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"updated": updated})
}
