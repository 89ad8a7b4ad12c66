package charges

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/fees"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleGenerate handles POST /clubs/{id}/charges/generate.
//
// It materializes the club's monthly fee schedule for the requested year:
// one charge per active month per current member. Generation is safe to
// repeat; months and members already charged for the period are reported
// as duplicates and left untouched, so re-running after adding a member
// only fills the gaps.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	var req generateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	club, err := h.Clubs.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	if err != nil {
		h.Log.Error("charges: club load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not generate charges")
		return
	}
	if !club.FeeSettings.IsActive {
		httpjson.Error(w, http.StatusConflict, "monthly fees are not active for this club")
		return
	}

	memberIDs, err := h.Memberships.MemberIDs(ctx, id)
	if err != nil {
		h.Log.Error("charges: roster load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not generate charges")
		return
	}

	batch := fees.GenerateMonthlyCharges(*club, memberIDs, req.Year, userID, time.Now().UTC())
	if len(batch) == 0 {
		httpjson.Write(w, http.StatusOK, generateResponse{Year: req.Year})
		return
	}

	res, err := h.Charges.AddBatch(ctx, batch)
	if err != nil {
		h.Log.Error("charges: batch insert failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not generate charges")
		return
	}

	if res.Added > 0 {
		title := fmt.Sprintf("Monthly fees for %d", req.Year)
		body := fmt.Sprintf("%s has posted %d monthly fee charges.", club.Name, res.Added)
		if err := h.Notifications.AddMany(ctx, memberIDs, id, models.NotifyKindCharge, title, body); err != nil {
			h.Log.Error("charges: generation notification failed", zap.Error(err))
		}
	}

	h.Log.Info("monthly charges generated",
		zap.String("club_id", id.Hex()),
		zap.Int("year", req.Year),
		zap.Int("created", res.Added),
		zap.Int("duplicates", res.Duplicates))

	httpjson.Write(w, http.StatusOK, generateResponse{
		Year:       req.Year,
		Created:    res.Added,
		Duplicates: res.Duplicates,
	})
}
