package payments

import (
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

type recordPaymentRequest struct {
	UserID   string    `json:"user_id" validate:"required"`
	Amount   string    `json:"amount" validate:"required"`
	Currency string    `json:"currency" validate:"required,len=3"`
	Note     string    `json:"note" validate:"max=500"`
	ChargeID string    `json:"charge_id"`
	PaidAt   time.Time `json:"paid_at"`
}

type paymentView struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	UserID     string    `json:"user_id"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	Reference  string    `json:"reference"`
	ChargeID   string    `json:"charge_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type paymentListResponse struct {
	Payments []paymentView `json:"payments"`
}

func toPaymentView(p models.Payment) paymentView {
	v := paymentView{
		ID:         p.ID.Hex(),
		ClubID:     p.ClubID.Hex(),
		UserID:     p.UserID.Hex(),
		Amount:     p.Amount.String(),
		Currency:   p.Currency,
		Note:       p.Note,
		Reference:  p.Reference,
		RecordedAt: p.RecordedAt,
	}
	if p.ChargeID != nil {
		v.ChargeID = p.ChargeID.Hex()
	}
	return v
}

func toPaymentViews(list []models.Payment) []paymentView {
	out := make([]paymentView, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentView(p))
	}
	return out
}
