package clubs

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the clubs feature.
type Handler struct {
	DB          *mongo.Database
	Clubs       *clubstore.Store
	Memberships *membershipstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Clubs:       clubstore.New(db),
		Memberships: membershipstore.New(db),
		Log:         logger,
	}
}

// clubID pulls and validates the {id} URL parameter. Answers 400 and
// returns false on a malformed ID.
func clubID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid club id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList handles GET /clubs. Admins see every club; everyone else sees
// the clubs they belong to.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if authz.IsAdmin(r) {
		clubs, err := h.Clubs.List(ctx, r.URL.Query().Get("status"))
		if err != nil {
			h.Log.Error("clubs: list failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not list clubs")
			return
		}
		httpjson.Write(w, http.StatusOK, clubListResponse{Clubs: toSummaries(clubs)})
		return
	}

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	memberships, err := h.Memberships.ListByUser(ctx, userID)
	if err != nil {
		h.Log.Error("clubs: membership lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list clubs")
		return
	}
	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ClubID)
	}
	clubs, err := h.Clubs.ListByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("clubs: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list clubs")
		return
	}
	httpjson.Write(w, http.StatusOK, clubListResponse{Clubs: toSummaries(clubs)})
}

// ServeView handles GET /clubs/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.IsMember && !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}

	club, err := h.Clubs.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("clubs: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load club")
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}

// HandleCreate handles POST /clubs. Admin only; the creator is enrolled as
// the club's first manager.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req createClubRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	club, err := h.Clubs.Create(ctx, models.Club{
		Name:        req.Name,
		Description: htmlsanitize.Sanitize(req.Description),
		MeetingInfo: htmlsanitize.PlainText(req.MeetingInfo),
		CreatedByID: userID,
	})
	if err != nil {
		h.Log.Error("clubs: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Memberships.Add(ctx, club.ID, userID, models.ClubRoleManager); err != nil {
		h.Log.Error("clubs: creator enrollment failed", zap.Error(err))
	}

	httpjson.Write(w, http.StatusCreated, club)
}

// HandleUpdate handles PUT /clubs/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	var req updateClubRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.Clubs.UpdateInfo(ctx, id, clubstore.Update{
		Name:        req.Name,
		Description: htmlsanitize.Sanitize(req.Description),
		MeetingInfo: htmlsanitize.PlainText(req.MeetingInfo),
	})
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("clubs: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleArchive handles POST /clubs/{id}/archive.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "archived")
}

// HandleReactivate handles POST /clubs/{id}/reactivate.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "active")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	err := h.Clubs.SetStatus(ctx, id, status)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("clubs: status change failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not change status")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": status})
}
