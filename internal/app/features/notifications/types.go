package notifications

import (
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

type notificationView struct {
	ID        string     `json:"id"`
	ClubID    string     `json:"club_id,omitempty"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

type listResponse struct {
	Unread        int64              `json:"unread"`
	Notifications []notificationView `json:"notifications"`
}

func toViews(list []models.Notification) []notificationView {
	out := make([]notificationView, 0, len(list))
	for _, n := range list {
		v := notificationView{
			ID:        n.ID.Hex(),
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		}
		if !n.ClubID.IsZero() {
			v.ClubID = n.ClubID.Hex()
		}
		out = append(out, v)
	}
	return out
}
