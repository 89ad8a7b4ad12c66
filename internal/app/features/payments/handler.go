package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	chargestore "github.com/dalemusser/clubhub/internal/app/store/charges"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	notificationstore "github.com/dalemusser/clubhub/internal/app/store/notifications"
	paymentstore "github.com/dalemusser/clubhub/internal/app/store/payments"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the payments feature.
type Handler struct {
	DB            *mongo.Database
	Payments      *paymentstore.Store
	Charges       *chargestore.Store
	Memberships   *membershipstore.Store
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Payments:      paymentstore.New(db),
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

// ServeList handles GET /clubs/{id}/payments. Managers and treasurers see
// the club's full ledger; a plain member sees only their own payments.
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
		list []models.Payment
		err  error
	)
	switch {
	case access.CanRecordPayments:
		list, err = h.Payments.ListByClub(ctx, id)
	case access.IsMember:
		list, err = h.Payments.ListByClubUser(ctx, id, userID)
	default:
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}
	if err != nil {
		h.Log.Error("payments: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list payments")
		return
	}
	httpjson.Write(w, http.StatusOK, paymentListResponse{Payments: toPaymentViews(list)})
}

// HandleRecord handles POST /clubs/{id}/payments. A fresh UUID reference is
// assigned to every payment and returned to the client as the receipt
// number.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, recorderID, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, id)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	if !access.CanRecordPayments {
		httpjson.Error(w, http.StatusForbidden, "treasurer access required")
		return
	}

	var req recordPaymentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	payerID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	role, err := h.Memberships.GetRole(ctx, id, payerID)
	if err != nil {
		h.Log.Error("payments: membership check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record payment")
		return
	}
	if role == "" {
		httpjson.Error(w, http.StatusNotFound, "user is not a member of this club")
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

	var chargeRef *primitive.ObjectID
	if req.ChargeID != "" {
		cid, err := primitive.ObjectIDFromHex(req.ChargeID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid charge id")
			return
		}
		charge, err := h.Charges.GetByID(ctx, cid)
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "charge not found")
			return
		}
		if err != nil {
			h.Log.Error("payments: charge lookup failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not record payment")
			return
		}
		if charge.ClubID != id {
			httpjson.Error(w, http.StatusNotFound, "charge not found")
			return
		}
		chargeRef = &cid
	}

	recordedAt := req.PaidAt.UTC()
	if req.PaidAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	payment, err := h.Payments.Create(ctx, models.Payment{
		ClubID:       id,
		UserID:       payerID,
		Amount:       money.MustDecimal128(amount),
		Currency:     currency,
		ChargeID:     chargeRef,
		Reference:    uuid.NewString(),
		Note:         htmlsanitize.PlainText(req.Note),
		RecordedByID: recorderID,
		RecordedAt:   recordedAt,
	})
	if errors.Is(err, paymentstore.ErrDuplicateReference) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("payments: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record payment")
		return
	}

	h.notifyPayer(ctx, payment)
	httpjson.Write(w, http.StatusCreated, toPaymentView(payment))
}

// notifyPayer tells the member their payment was recorded. Failures are
// logged, never surfaced; the payment is already on the ledger.
func (h *Handler) notifyPayer(ctx context.Context, p models.Payment) {
	amt, _ := money.FromDecimal128(p.Amount)
	body := fmt.Sprintf("Payment of %s %s recorded. Receipt %s.", amt.String(), p.Currency, p.Reference)
	if err := h.Notifications.Add(ctx, models.Notification{
		UserID: p.UserID,
		ClubID: p.ClubID,
		Kind:   models.NotifyKindPayment,
		Title:  "Payment received",
		Body:   body,
	}); err != nil {
		h.Log.Error("payments: notification failed", zap.Error(err))
	}
}
