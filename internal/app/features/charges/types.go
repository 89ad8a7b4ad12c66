package charges

import (
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

type createChargeRequest struct {
	Description  string    `json:"description" validate:"required,max=200"`
	Amount       string    `json:"amount" validate:"required"`
	Currency     string    `json:"currency" validate:"required,len=3"`
	DueDate      time.Time `json:"due_date" validate:"required"`
	AppliesToAll bool      `json:"applies_to_all"`
	UserIDs      []string  `json:"user_ids"`
}

type generateRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2200"`
}

type generateResponse struct {
	Year       int `json:"year"`
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

// chargeView is the JSON projection of a charge. Amount is a string so the
// client never sees a float.
type chargeView struct {
	ID           string    `json:"id"`
	ClubID       string    `json:"club_id"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	DueDate      time.Time `json:"due_date"`
	AppliesToAll bool      `json:"applies_to_all"`
	UserIDs      []string  `json:"user_ids,omitempty"`
	Source       string    `json:"source"`
	PeriodYear   int       `json:"period_year,omitempty"`
	PeriodMonth  int       `json:"period_month,omitempty"`
}

type chargeListResponse struct {
	Charges []chargeView `json:"charges"`
}

func toChargeView(c models.Charge) chargeView {
	ids := make([]string, 0, len(c.UserIDs))
	for _, id := range c.UserIDs {
		ids = append(ids, id.Hex())
	}
	return chargeView{
		ID:           c.ID.Hex(),
		ClubID:       c.ClubID.Hex(),
		Description:  c.Description,
		Amount:       c.Amount.String(),
		Currency:     c.Currency,
		DueDate:      c.DueDate,
		AppliesToAll: c.AppliesToAll,
		UserIDs:      ids,
		Source:       c.Source,
		PeriodYear:   c.PeriodYear,
		PeriodMonth:  c.PeriodMonth,
	}
}

func toChargeViews(list []models.Charge) []chargeView {
	out := make([]chargeView, 0, len(list))
	for _, c := range list {
		out = append(out, toChargeView(c))
	}
	return out
}
