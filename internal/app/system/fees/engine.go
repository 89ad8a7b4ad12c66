// Package fees computes member balances and generates recurring monthly
// charges from a club's fee settings.
//
// All arithmetic is decimal; amounts come out of Mongo as Decimal128 and are
// converted once on entry. A stored amount that fails to decode is logged by
// the caller and skipped rather than poisoning every balance in the club.
package fees

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// Payment status classifications.
const (
	StatusPaid    = "paid"    // balance == 0
	StatusCredit  = "credit"  // balance > 0
	StatusPending = "pending" // balance < 0, nothing past due outstanding
	StatusOverdue = "overdue" // balance < 0 with past-due unpaid charges
)

// MemberBalance is a member's computed financial position in one club.
// Invariant: Balance = TotalPaid - TotalOwed; OverdueCharges >= 0.
type MemberBalance struct {
	UserID         primitive.ObjectID `json:"user_id"`
	TotalOwed      decimal.Decimal    `json:"total_owed"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	OverdueCharges decimal.Decimal    `json:"overdue_charges"`
	Balance        decimal.Decimal    `json:"balance"`
	Status         string             `json:"status"`
}

// Classify maps a balance and overdue total to a payment status.
// A non-negative balance is never overdue.
func Classify(balance, overdue decimal.Decimal) string {
	switch {
	case balance.IsPositive():
		return StatusCredit
	case balance.IsZero():
		return StatusPaid
	case overdue.IsPositive():
		return StatusOverdue
	default:
		return StatusPending
	}
}

// ComputeBalances computes a MemberBalance for each member ID over the given
// charges and payments, evaluated at now.
//
// For each member:
//   - TotalOwed sums charges that apply to the member (listed explicitly or
//     marked apply-to-all) whose due date has passed.
//   - TotalPaid sums the member's recorded payments.
//   - OverdueCharges sums, per past-due applicable charge, the portion not
//     covered by payments recorded against that specific charge. Payments
//     without a charge reference reduce the balance but not per-charge
//     overdue amounts.
//
// Charges or payments with undecodable amounts are skipped. The result is
// ordered to match memberIDs.
func ComputeBalances(memberIDs []primitive.ObjectID, charges []models.Charge, payments []models.Payment, now time.Time) []MemberBalance {
	// Payments applied to a specific charge, keyed by (user, charge).
	type userCharge struct {
		user   primitive.ObjectID
		charge primitive.ObjectID
	}
	paidByUser := make(map[primitive.ObjectID]decimal.Decimal, len(memberIDs))
	paidOnCharge := make(map[userCharge]decimal.Decimal)

	for _, p := range payments {
		amt, err := money.FromDecimal128(p.Amount)
		if err != nil {
			continue
		}
		paidByUser[p.UserID] = paidByUser[p.UserID].Add(amt)
		if p.ChargeID != nil {
			k := userCharge{user: p.UserID, charge: *p.ChargeID}
			paidOnCharge[k] = paidOnCharge[k].Add(amt)
		}
	}

	out := make([]MemberBalance, 0, len(memberIDs))
	for _, uid := range memberIDs {
		owed := decimal.Zero
		overdue := decimal.Zero

		for _, c := range charges {
			if !c.AppliesTo(uid) {
				continue
			}
			if c.DueDate.After(now) {
				continue
			}
			amt, err := money.FromDecimal128(c.Amount)
			if err != nil {
				continue
			}
			owed = owed.Add(amt)

			covered := paidOnCharge[userCharge{user: uid, charge: c.ID}]
			if short := amt.Sub(covered); short.IsPositive() {
				overdue = overdue.Add(short)
			}
		}

		paid := paidByUser[uid]
		balance := paid.Sub(owed)

		out = append(out, MemberBalance{
			UserID:         uid,
			TotalOwed:      owed,
			TotalPaid:      paid,
			OverdueCharges: overdue,
			Balance:        balance,
			Status:         Classify(balance, overdue),
		})
	}
	return out
}

// GenerateMonthlyCharges builds the monthly fee charges for one club year:
// one charge per (active month, member), due on the settings' due day.
//
// The engine itself is pure; idempotency comes from the unique
// (club, user, year, month) index the charge store inserts against, so
// re-running a year only creates charges that don't exist yet.
//
// Returns nil when fee collection is inactive or the amount is not positive.
func GenerateMonthlyCharges(club models.Club, memberIDs []primitive.ObjectID, year int, createdBy primitive.ObjectID, now time.Time) []models.Charge {
	s := club.FeeSettings
	if !s.IsActive || len(memberIDs) == 0 {
		return nil
	}
	amount, err := money.FromDecimal128(s.MonthlyFeeAmount)
	if err != nil || !amount.IsPositive() {
		return nil
	}

	dueDay := s.DueDay
	if dueDay < 1 || dueDay > 28 {
		dueDay = 1
	}

	months := activeMonths(s.ActiveMonths)
	charges := make([]models.Charge, 0, len(months)*len(memberIDs))
	for _, m := range months {
		due := time.Date(year, time.Month(m), dueDay, 0, 0, 0, 0, time.UTC)
		desc := fmt.Sprintf("Monthly fee %s %d", time.Month(m).String(), year)
		for _, uid := range memberIDs {
			charges = append(charges, models.Charge{
				ClubID:      club.ID,
				Description: desc,
				Amount:      s.MonthlyFeeAmount,
				Currency:    s.Currency,
				DueDate:     due,
				UserIDs:     []primitive.ObjectID{uid},
				Source:      models.ChargeSourceMonthly,
				PeriodYear:  year,
				PeriodMonth: m,
				CreatedByID: createdBy,
				CreatedAt:   now.UTC(),
			})
		}
	}
	return charges
}

// activeMonths sorts, dedupes, and clamps the configured months to 1..12.
func activeMonths(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, m := range in {
		if m < 1 || m > 12 || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
