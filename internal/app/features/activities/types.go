package activities

import (
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

type activityRequest struct {
	Title    string    `json:"title" validate:"required,max=150"`
	Location string    `json:"location" validate:"max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Minutes  int       `json:"minutes" validate:"min=0,max=1440"`
	Notes    string    `json:"notes" validate:"max=2000"`
}

type activityView struct {
	ID       string    `json:"id"`
	ClubID   string    `json:"club_id"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	Minutes  int       `json:"minutes,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

type activityListResponse struct {
	Activities []activityView `json:"activities"`
}

func toActivityView(a models.Activity) activityView {
	return activityView{
		ID:       a.ID.Hex(),
		ClubID:   a.ClubID.Hex(),
		Title:    a.Title,
		Location: a.Location,
		StartsAt: a.StartsAt,
		Minutes:  a.Minutes,
		Notes:    a.Notes,
	}
}

func toActivityViews(list []models.Activity) []activityView {
	out := make([]activityView, 0, len(list))
	for _, a := range list {
		out = append(out, toActivityView(a))
	}
	return out
}
