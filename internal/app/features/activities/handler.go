package activities

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	activitystore "github.com/dalemusser/clubhub/internal/app/store/activities"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	notificationstore "github.com/dalemusser/clubhub/internal/app/store/notifications"
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

// Handler is the shared dependency container for the activities feature.
type Handler struct {
	DB            *mongo.Database
	Activities    *activitystore.Store
	Memberships   *membershipstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Activities:    activitystore.New(db),
		Memberships:   membershipstore.New(db),
		Notifications: notificationstore.New(db),
		Log:           logger,
	}
}

func clubID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid club id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList handles GET /clubs/{id}/activities. By default only upcoming
// activities are returned; pass ?all=true for the full history, or
// ?from=RFC3339 to pick the cutoff.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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
	if !access.IsMember {
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}

	after := time.Now().UTC()
	q := r.URL.Query()
	if q.Get("all") == "true" {
		after = time.Time{}
	} else if from := q.Get("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid from time")
			return
		}
		after = parsed.UTC()
	}

	list, err := h.Activities.ListByClub(ctx, id, after)
	if err != nil {
		h.Log.Error("activities: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list activities")
		return
	}
	httpjson.Write(w, http.StatusOK, activityListResponse{Activities: toActivityViews(list)})
}

// HandleCreate handles POST /clubs/{id}/activities.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, userID, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageClub {
		httpjson.Error(w, http.StatusForbidden, "manager access required")
		return
	}

	var req activityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.Activities.Create(ctx, models.Activity{
		ClubID:      id,
		Title:       htmlsanitize.PlainText(req.Title),
		Location:    htmlsanitize.PlainText(req.Location),
		StartsAt:    req.StartsAt.UTC(),
		Minutes:     req.Minutes,
		Notes:       htmlsanitize.PlainText(req.Notes),
		CreatedByID: userID,
	})
	if err != nil {
		h.Log.Error("activities: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create activity")
		return
	}

	h.notifyScheduled(ctx, activity)
	httpjson.Write(w, http.StatusCreated, toActivityView(activity))
}

// HandleUpdate handles PUT /clubs/{id}/activities/{activityID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}
	activityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "activityID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid activity id")
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

	var req activityRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Activities.UpdateInfo(ctx, id, activityID, activitystore.Update{
		Title:    htmlsanitize.PlainText(req.Title),
		Location: htmlsanitize.PlainText(req.Location),
		StartsAt: req.StartsAt.UTC(),
		Minutes:  req.Minutes,
		Notes:    htmlsanitize.PlainText(req.Notes),
	})
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "activity not found")
		return
	}
	if err != nil {
		h.Log.Error("activities: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update activity")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /clubs/{id}/activities/{activityID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}
	activityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "activityID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid activity id")
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

	deleted, err := h.Activities.Delete(ctx, id, activityID)
	if err != nil {
		h.Log.Error("activities: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete activity")
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "activity not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// notifyScheduled tells the roster about a newly scheduled activity.
// Failures are logged, never surfaced.
func (h *Handler) notifyScheduled(ctx context.Context, a models.Activity) {
	memberIDs, err := h.Memberships.MemberIDs(ctx, a.ClubID)
	if err != nil {
		h.Log.Error("activities: notification roster load failed", zap.Error(err))
		return
	}
	body := a.StartsAt.Format("Jan 2, 2006 at 3:04 PM")
	if a.Location != "" {
		body += " at " + a.Location
	}
	if err := h.Notifications.AddMany(ctx, memberIDs, a.ClubID,
		models.NotifyKindActivity, a.Title, body); err != nil {
		h.Log.Error("activities: notification fan-out failed", zap.Error(err))
	}
}
