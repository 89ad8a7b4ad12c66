package balances

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	chargestore "github.com/dalemusser/clubhub/internal/app/store/charges"
	membershipstore "github.com/dalemusser/clubhub/internal/app/store/memberships"
	paymentstore "github.com/dalemusser/clubhub/internal/app/store/payments"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/fees"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the computed balance views for a club.
type Handler struct {
	DB          *mongo.Database
	Users       *userstore.Store
	Memberships *membershipstore.Store
	Charges     *chargestore.Store
	Payments    *paymentstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Users:       userstore.New(db),
		Memberships: membershipstore.New(db),
		Charges:     chargestore.New(db),
		Payments:    paymentstore.New(db),
		Log:         logger,
	}
}

// ServeList handles GET /clubs/{id}/balances.
//
// Managers and treasurers get the whole roster; a plain member gets a
// single-row response holding only their own balance. Balances are computed
// on read from the club's charges and payments, never stored.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid club id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	access, userID, signedIn := clubpolicy.AccessFor(ctx, h.DB, r, clubID)
	if !signedIn {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var memberIDs []primitive.ObjectID
	switch {
	case access.CanViewAllBalances:
		memberIDs, err = h.Memberships.MemberIDs(ctx, clubID)
		if err != nil {
			h.Log.Error("balances: roster load failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not compute balances")
			return
		}
	case access.IsMember:
		memberIDs = []primitive.ObjectID{userID}
	default:
		httpjson.Error(w, http.StatusForbidden, "not a member of this club")
		return
	}

	charges, err := h.Charges.ListByClub(ctx, clubID)
	if err != nil {
		h.Log.Error("balances: charge load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not compute balances")
		return
	}
	payments, err := h.Payments.ListByClub(ctx, clubID)
	if err != nil {
		h.Log.Error("balances: payment load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not compute balances")
		return
	}

	computed := fees.ComputeBalances(memberIDs, charges, payments, time.Now().UTC())

	names, err := h.memberNames(ctx, memberIDs)
	if err != nil {
		h.Log.Error("balances: name lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not compute balances")
		return
	}

	httpjson.Write(w, http.StatusOK, balanceListResponse{
		ClubID:   clubID.Hex(),
		AsOf:     time.Now().UTC(),
		Balances: toBalanceViews(computed, names),
	})
}

func (h *Handler) memberNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	users, err := h.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names, nil
}
