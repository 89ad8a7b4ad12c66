package clubs

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeFeeSettings handles GET /clubs/{id}/fee-settings.
func (h *Handler) ServeFeeSettings(w http.ResponseWriter, r *http.Request) {
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
	if !access.CanManageFees {
		httpjson.Error(w, http.StatusForbidden, "treasurer access required")
		return
	}

	club, err := h.Clubs.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("clubs: fee settings load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load fee settings")
		return
	}

	fs := club.FeeSettings
	httpjson.Write(w, http.StatusOK, feeSettingsResponse{
		MonthlyFeeAmount: fs.MonthlyFeeAmount.String(),
		Currency:         fs.Currency,
		ActiveMonths:     fs.ActiveMonths,
		DueDay:           fs.DueDay,
		IsActive:         fs.IsActive,
	})
}

// HandleUpdateFeeSettings handles PUT /clubs/{id}/fee-settings.
func (h *Handler) HandleUpdateFeeSettings(w http.ResponseWriter, r *http.Request) {
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
	if !access.CanManageFees {
		httpjson.Error(w, http.StatusForbidden, "treasurer access required")
		return
	}

	var req feeSettingsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := money.ParseAmount(req.MonthlyFeeAmount)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}
	currency := strings.ToUpper(req.Currency)
	if !money.ValidCurrency(currency) {
		httpjson.Error(w, http.StatusBadRequest, "invalid currency code")
		return
	}
	for _, m := range req.ActiveMonths {
		if m < 1 || m > 12 {
			httpjson.Error(w, http.StatusBadRequest, "active months must be between 1 and 12")
			return
		}
	}

	amt128, err := money.ToDecimal128(amount)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid amount")
		return
	}

	fs := models.FeeSettings{
		MonthlyFeeAmount: amt128,
		Currency:         currency,
		ActiveMonths:     req.ActiveMonths,
		DueDay:           req.DueDay,
		IsActive:         req.IsActive,
	}
	err = h.Clubs.UpdateFeeSettings(ctx, id, fs)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("clubs: fee settings update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save fee settings")
		return
	}

	httpjson.Write(w, http.StatusOK, feeSettingsResponse{
		MonthlyFeeAmount: amount.String(),
		Currency:         currency,
		ActiveMonths:     req.ActiveMonths,
		DueDay:           req.DueDay,
		IsActive:         req.IsActive,
	})
}
