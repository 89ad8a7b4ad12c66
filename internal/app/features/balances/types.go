package balances

import (
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/fees"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// balanceView carries one member's position with every amount rendered as a
// string so clients never round through a float.
type balanceView struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name,omitempty"`
	TotalOwed      string `json:"total_owed"`
	TotalPaid      string `json:"total_paid"`
	OverdueCharges string `json:"overdue_charges"`
	Balance        string `json:"balance"`
	Status         string `json:"status"`
}

type balanceListResponse struct {
	ClubID   string        `json:"club_id"`
	AsOf     time.Time     `json:"as_of"`
	Balances []balanceView `json:"balances"`
}

func toBalanceViews(in []fees.MemberBalance, names map[primitive.ObjectID]string) []balanceView {
	out := make([]balanceView, 0, len(in))
	for _, b := range in {
		out = append(out, balanceView{
			UserID:         b.UserID.Hex(),
			FullName:       names[b.UserID],
			TotalOwed:      b.TotalOwed.String(),
			TotalPaid:      b.TotalPaid.String(),
			OverdueCharges: b.OverdueCharges.String(),
			Balance:        b.Balance.String(),
			Status:         b.Status,
		})
	}
	return out
}
