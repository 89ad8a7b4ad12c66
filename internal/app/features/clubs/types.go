package clubs

import (
	"github.com/dalemusser/clubhub/internal/domain/models"
)

type createClubRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=4000"`
	MeetingInfo string `json:"meeting_info" validate:"max=500"`
}

type updateClubRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=4000"`
	MeetingInfo string `json:"meeting_info" validate:"max=500"`
}

// clubSummary is the list-view projection of a club.
type clubSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	FeesActive  bool   `json:"fees_active"`
}

type clubListResponse struct {
	Clubs []clubSummary `json:"clubs"`
}

func toSummaries(clubs []models.Club) []clubSummary {
	out := make([]clubSummary, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, clubSummary{
			ID:          c.ID.Hex(),
			Name:        c.Name,
			Description: c.Description,
			Status:      c.Status,
			FeesActive:  c.FeeSettings.IsActive,
		})
	}
	return out
}

// feeSettingsRequest is the PUT /clubs/{id}/fee-settings payload. Amount
// travels as a string so clients never round it through a float.
type feeSettingsRequest struct {
	MonthlyFeeAmount string `json:"monthly_fee_amount" validate:"required"`
	Currency         string `json:"currency" validate:"required,len=3"`
	ActiveMonths     []int  `json:"active_months" validate:"required,min=1"`
	DueDay           int    `json:"due_day" validate:"required,min=1,max=28"`
	IsActive         bool   `json:"is_active"`
}

type feeSettingsResponse struct {
	MonthlyFeeAmount string `json:"monthly_fee_amount"`
	Currency         string `json:"currency"`
	ActiveMonths     []int  `json:"active_months"`
	DueDay           int    `json:"due_day"`
	IsActive         bool   `json:"is_active"`
}
