// Package theme serves the signed-in user's theme preference and the
// resolved token set the mobile client paints with.
package theme

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/theming"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

type modeResponse struct {
	Mode string `json:"mode"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type resolvedResponse struct {
	Mode   string           `json:"mode"`
	Active string           `json:"active_theme"`
	Tokens theming.TokenSet `json:"tokens"`
}

// ServeMode handles GET /me/theme.
func (h *Handler) ServeMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.currentMode(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, modeResponse{Mode: string(mode)})
}

// HandleSetMode handles PUT /me/theme.
func (h *Handler) HandleSetMode(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req modeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := theming.ParseMode(req.Mode)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetThemeMode(ctx, userID, string(mode)); err != nil {
		h.Log.Error("theme: save mode failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save theme")
		return
	}
	httpjson.Write(w, http.StatusOK, modeResponse{Mode: string(mode)})
}

// ServeResolved handles GET /me/theme/resolved?scheme=dark.
//
// The scheme query carries the device's OS appearance so "system" mode can
// follow it. A missing or unknown scheme counts as light.
func (h *Handler) ServeResolved(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.currentMode(w, r)
	if !ok {
		return
	}

	scheme := theming.ParseScheme(r.URL.Query().Get("scheme"))
	active := theming.Resolve(mode, scheme)

	httpjson.Write(w, http.StatusOK, resolvedResponse{
		Mode:   string(mode),
		Active: string(active),
		Tokens: theming.Tokens(active),
	})
}

// currentMode loads the stored preference for the signed-in user, falling
// back to the default for users who never picked one.
func (h *Handler) currentMode(w http.ResponseWriter, r *http.Request) (theming.Mode, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("theme: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load theme")
		return "", false
	}

	if user.ThemeMode == "" {
		return theming.DefaultMode, true
	}
	mode, err := theming.ParseMode(user.ThemeMode)
	if err != nil {
		// A stored value we no longer recognize behaves like system.
		return theming.ModeSystem, true
	}
	return mode, true
}
