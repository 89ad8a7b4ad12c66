package charges

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	chargestore "github.com/dalemusser/clubhub/internal/app/store/charges"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	notificationstore "github.com/dalemusser/clubhub/internal/app/store/notifications"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the charges feature.
type Handler struct {
	DB            *mongo.Database
	Clubs         *clubstore.Store
	Charges       *chargestore.Store
	Memberships   *membershipstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Clubs:         clubstore.New(db),
		Charges:       chargestore.New(db),
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

// ServeList handles GET /clubs/{id}/charges. Managers and treasurers see
// every charge; plain members see only the charges that apply to them.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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

	var (
		list []models.Charge
		err  error
	)
	switch {
	case access.CanManageFees:
		list, err = h.Charges.ListByClub(ctx, id)
	case access.IsMember:
		list, err = h.Charges.ListForUser(ctx, id, userID)
	default:
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}
	if err != nil {
		h.Log.Error("charges: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list charges")
		return
	}
	httpjson.Write(w, http.StatusOK, chargeListResponse{Charges: toChargeViews(list)})
}

// HandleCreate handles POST /clubs/{id}/charges, creating a one-off charge.
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
	if !access.CanManageFees {
		httpjson.Error(w, http.StatusForbidden, "treasurer access required")
		return
	}

	var req createChargeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}
	currency := strings.ToUpper(req.Currency)
	if !money.ValidCurrency(currency) {
		httpjson.Error(w, http.StatusBadRequest, "invalid currency code")
		return
	}

	// Resolve targets: either the whole roster or an explicit member list.
	var targets []primitive.ObjectID
	if !req.AppliesToAll {
		for _, s := range req.UserIDs {
			uid, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				httpjson.Error(w, http.StatusBadRequest, "invalid user id in selection")
				return
			}
			targets = append(targets, uid)
		}
		if len(targets) == 0 {
			httpjson.Error(w, http.StatusBadRequest, "no members selected")
			return
		}
	}

	charge, err := h.Charges.Create(ctx, models.Charge{
		ClubID:       id,
		Description:  htmlsanitize.PlainText(req.Description),
		Amount:       money.MustDecimal128(amount),
		Currency:     currency,
		DueDate:      req.DueDate.UTC(),
		AppliesToAll: req.AppliesToAll,
		UserIDs:      targets,
		Source:       models.ChargeSourceCustom,
		CreatedByID:  userID,
	})
	if err != nil {
		h.Log.Error("charges: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create charge")
		return
	}

	h.notifyCharged(ctx, charge)
	httpjson.Write(w, http.StatusCreated, toChargeView(charge))
}

// HandleDelete handles DELETE /clubs/{id}/charges/{chargeID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}
	chargeID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "chargeID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid charge id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, _, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanManageFees {
		httpjson.Error(w, http.StatusForbidden, "treasurer access required")
		return
	}

	deleted, err := h.Charges.Delete(ctx, id, chargeID)
	if err != nil {
		h.Log.Error("charges: delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete charge")
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "charge not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// notifyCharged fans a new-charge notification out to the affected members.
// Notification failures are logged, never surfaced; the charge itself has
// already been written.
func (h *Handler) notifyCharged(ctx context.Context, charge models.Charge) {
	targets := charge.UserIDs
	if charge.AppliesToAll {
		ids, err := h.Memberships.MemberIDs(ctx, charge.ClubID)
		if err != nil {
			h.Log.Error("charges: notification roster load failed", zap.Error(err))
			return
		}
		targets = ids
	}
	amount, _ := money.FromDecimal128(charge.Amount)
	body := fmt.Sprintf("%s %s due %s", amount.String(), charge.Currency,
		charge.DueDate.Format("Jan 2, 2006"))
	if err := h.Notifications.AddMany(ctx, targets, charge.ClubID,
		models.NotifyKindCharge, charge.Description, body); err != nil {
		h.Log.Error("charges: notification fan-out failed", zap.Error(err))
	}
}
