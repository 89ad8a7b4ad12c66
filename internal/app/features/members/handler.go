package members

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for club roster management.
type Handler struct {
	DB          *mongo.Database
	Users       *userstore.Store
	Memberships *membershipstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Users:       userstore.New(db),
		Memberships: membershipstore.New(db),
		Log:         logger,
	}
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=manager treasurer member"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=manager treasurer member"`
}

type rosterEntry struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type rosterResponse struct {
	Members []rosterEntry `json:"members"`
}

func urlIDs(w http.ResponseWriter, r *http.Request) (clubID, userID primitive.ObjectID, ok bool) {
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid club id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	if uid := chi.URLParam(r, "userID"); uid != "" {
		userID, err = primitive.ObjectIDFromHex(uid)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid user id")
			return primitive.NilObjectID, primitive.NilObjectID, false
		}
	}
	return clubID, userID, true
}

// ServeRoster handles GET /clubs/{id}/members. Any member of the club can
// see the roster.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := urlIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, clubID)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.IsMember && !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}

	memberships, err := h.Memberships.ListByClub(ctx, clubID, "")
	if err != nil {
		h.Log.Error("members: roster load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load roster")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	roleByID := make(map[primitive.ObjectID]string, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
		roleByID[m.UserID] = m.Role
	}
	users, err := h.Users.ListByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("members: user load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load roster")
		return
	}

	entries := make([]rosterEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, rosterEntry{
			UserID:   u.ID.Hex(),
			FullName: u.FullName,
			Email:    u.Email,
			Role:     roleByID[u.ID],
		})
	}
	httpjson.Write(w, http.StatusOK, rosterResponse{Members: entries})
}

// HandleAdd handles POST /clubs/{id}/members. The user is looked up by
// email; they must already have an account.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := urlIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, clubID)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	var req addMemberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "no account with this email")
		return
	}
	if err != nil {
		h.Log.Error("members: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not add member")
		return
	}

	err = h.Memberships.Add(ctx, clubID, user.ID, req.Role)
	if err == membershipstore.ErrDuplicateMembership {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("members: add failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	httpjson.Write(w, http.StatusCreated, rosterEntry{
		UserID:   user.ID.Hex(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     req.Role,
	})
}

// HandleSetRole handles PUT /clubs/{id}/members/{userID}. Demoting the last
// manager is refused so every club keeps someone who can run it.
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	clubID, userID, ok := urlIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, clubID)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	var req setRoleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Role != models.ClubRoleManager {
		lastManager, err := h.isLastManager(ctx, clubID, userID)
		if err != nil {
			h.Log.Error("members: manager count failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not change role")
			return
		}
		if lastManager {
			httpjson.Error(w, http.StatusConflict, "cannot demote the club's only manager")
			return
		}
	}

	err := h.Memberships.SetRole(ctx, clubID, userID, req.Role)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "membership not found")
		return
	}
	if err != nil {
		h.Log.Error("members: role change failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"role": req.Role})
}

// HandleRemove handles DELETE /clubs/{id}/members/{userID}. Removing the
// last manager is refused.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	clubID, userID, ok := urlIDs(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, clubID)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	lastManager, err := h.isLastManager(ctx, clubID, userID)
	if err != nil {
		h.Log.Error("members: manager count failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not remove member")
		return
	}
	if lastManager {
		httpjson.Error(w, http.StatusConflict, "cannot remove the club's only manager")
		return
	}

	deleted, err := h.Memberships.Remove(ctx, clubID, userID)
	if err != nil {
		h.Log.Error("members: remove failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not remove member")
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "membership not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "removed"})
}

// isLastManager reports whether userID is a manager and the club has no
// other manager.
func (h *Handler) isLastManager(ctx context.Context, clubID, userID primitive.ObjectID) (bool, error) {
	role, err := h.Memberships.GetRole(ctx, clubID, userID)
	if err != nil {
		return false, err
	}
	if role != models.ClubRoleManager {
		return false, nil
	}
	managers, err := h.Memberships.CountByClub(ctx, clubID, models.ClubRoleManager)
	if err != nil {
		return false, err
	}
	return managers <= 1, nil
}
