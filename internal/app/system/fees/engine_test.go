package fees_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/clubhub/internal/app/system/fees"
	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) primitive.Decimal128 {
	return money.MustDecimal128(decimal.RequireFromString(s))
}

func charge(club primitive.ObjectID, amount string, due time.Time, users ...primitive.ObjectID) models.Charge {
	return models.Charge{
		ID:          primitive.NewObjectID(),
		ClubID:      club,
		Description: "test charge",
		Amount:      dec(amount),
		Currency:    "USD",
		DueDate:     due,
		UserIDs:     users,
		Source:      models.ChargeSourceCustom,
	}
}

func payment(club, user primitive.ObjectID, amount string, chargeID *primitive.ObjectID) models.Payment {
	return models.Payment{
		ID:       primitive.NewObjectID(),
		ClubID:   club,
		UserID:   user,
		Amount:   dec(amount),
		Currency: "USD",
		ChargeID: chargeID,
	}
}

func TestComputeBalances_BalanceInvariant(t *testing.T) {
	club := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	past := testNow.AddDate(0, -1, 0)
	charges := []models.Charge{
		charge(club, "25", past, alice),
		charge(club, "40", past, alice, bob),
	}
	payments := []models.Payment{
		payment(club, alice, "10", nil),
		payment(club, bob, "55", nil),
	}

	balances := fees.ComputeBalances([]primitive.ObjectID{alice, bob}, charges, payments, testNow)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}

	for _, b := range balances {
		want := b.TotalPaid.Sub(b.TotalOwed)
		if !b.Balance.Equal(want) {
			t.Errorf("user %s: balance %s != paid %s - owed %s", b.UserID.Hex(), b.Balance, b.TotalPaid, b.TotalOwed)
		}
		if b.OverdueCharges.IsNegative() {
			t.Errorf("user %s: negative overdue %s", b.UserID.Hex(), b.OverdueCharges)
		}
	}

	// alice owes 65, paid 10
	if a := balances[0]; !a.Balance.Equal(decimal.RequireFromString("-55")) {
		t.Errorf("alice balance = %s, want -55", a.Balance)
	}
	// bob owes 40, paid 55 → credit
	if b := balances[1]; b.Status != fees.StatusCredit {
		t.Errorf("bob status = %q, want credit", b.Status)
	}
}

func TestComputeBalances_NonNegativeBalanceNeverOverdue(t *testing.T) {
	club := primitive.NewObjectID()
	user := primitive.NewObjectID()

	past := testNow.AddDate(0, -2, 0)
	charges := []models.Charge{charge(club, "30", past, user)}
	payments := []models.Payment{payment(club, user, "30", nil)}

	balances := fees.ComputeBalances([]primitive.ObjectID{user}, charges, payments, testNow)
	b := balances[0]
	if b.Status == fees.StatusOverdue {
		t.Errorf("zero balance classified overdue")
	}
	if b.Status != fees.StatusPaid {
		t.Errorf("status = %q, want paid", b.Status)
	}
}

func TestComputeBalances_OverdueScenario(t *testing.T) {
	// Spec scenario: totalOwed=30, totalPaid=10, one overdue charge of 20
	// → balance=-20, overdueCharges=20, classified overdue.
	club := primitive.NewObjectID()
	user := primitive.NewObjectID()

	past := testNow.AddDate(0, -1, 0)
	paidCharge := charge(club, "10", past, user)
	unpaidCharge := charge(club, "20", past.AddDate(0, 0, -5), user)

	charges := []models.Charge{paidCharge, unpaidCharge}
	payments := []models.Payment{payment(club, user, "10", &paidCharge.ID)}

	b := fees.ComputeBalances([]primitive.ObjectID{user}, charges, payments, testNow)[0]

	if !b.TotalOwed.Equal(decimal.RequireFromString("30")) {
		t.Errorf("TotalOwed = %s, want 30", b.TotalOwed)
	}
	if !b.TotalPaid.Equal(decimal.RequireFromString("10")) {
		t.Errorf("TotalPaid = %s, want 10", b.TotalPaid)
	}
	if !b.Balance.Equal(decimal.RequireFromString("-20")) {
		t.Errorf("Balance = %s, want -20", b.Balance)
	}
	if !b.OverdueCharges.Equal(decimal.RequireFromString("20")) {
		t.Errorf("OverdueCharges = %s, want 20", b.OverdueCharges)
	}
	if b.Status != fees.StatusOverdue {
		t.Errorf("Status = %q, want overdue", b.Status)
	}
}

func TestComputeBalances_FutureChargesNotOwed(t *testing.T) {
	club := primitive.NewObjectID()
	user := primitive.NewObjectID()

	future := testNow.AddDate(0, 1, 0)
	charges := []models.Charge{charge(club, "100", future, user)}

	b := fees.ComputeBalances([]primitive.ObjectID{user}, charges, nil, testNow)[0]
	if !b.TotalOwed.IsZero() {
		t.Errorf("TotalOwed = %s for future charge, want 0", b.TotalOwed)
	}
	if b.Status != fees.StatusPaid {
		t.Errorf("Status = %q, want paid", b.Status)
	}
}

func TestComputeBalances_ApplyToAllCharges(t *testing.T) {
	club := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	all := models.Charge{
		ID:           primitive.NewObjectID(),
		ClubID:       club,
		Description:  "field rental",
		Amount:       dec("15"),
		Currency:     "USD",
		DueDate:      testNow.AddDate(0, 0, -1),
		AppliesToAll: true,
		Source:       models.ChargeSourceCustom,
	}

	balances := fees.ComputeBalances([]primitive.ObjectID{alice, bob}, []models.Charge{all}, nil, testNow)
	for _, b := range balances {
		if !b.TotalOwed.Equal(decimal.RequireFromString("15")) {
			t.Errorf("user %s: TotalOwed = %s, want 15", b.UserID.Hex(), b.TotalOwed)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		balance, overdue string
		want             string
	}{
		{"10", "0", fees.StatusCredit},
		{"0", "0", fees.StatusPaid},
		{"-5", "5", fees.StatusOverdue},
		{"-5", "0", fees.StatusPending},
		{"0", "5", fees.StatusPaid}, // non-negative balance is never overdue
	}
	for _, c := range cases {
		got := fees.Classify(decimal.RequireFromString(c.balance), decimal.RequireFromString(c.overdue))
		if got != c.want {
			t.Errorf("Classify(%s, %s) = %q, want %q", c.balance, c.overdue, got, c.want)
		}
	}
}

func feeClub(amount string, months []int, active bool) models.Club {
	return models.Club{
		ID:   primitive.NewObjectID(),
		Name: "Chess Club",
		FeeSettings: models.FeeSettings{
			MonthlyFeeAmount: dec(amount),
			Currency:         "USD",
			ActiveMonths:     months,
			DueDay:           5,
			IsActive:         active,
		},
	}
}

func TestGenerateMonthlyCharges_ThreeMonthsTwoMembers(t *testing.T) {
	// Spec scenario: amount 10, months [1,2,3], 2 active members → 6 charges.
	club := feeClub("10", []int{1, 2, 3}, true)
	members := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	admin := primitive.NewObjectID()

	charges := fees.GenerateMonthlyCharges(club, members, 2026, admin, testNow)
	if len(charges) != 6 {
		t.Fatalf("got %d charges, want 6", len(charges))
	}

	for _, c := range charges {
		amt, err := money.FromDecimal128(c.Amount)
		if err != nil {
			t.Fatalf("bad amount: %v", err)
		}
		if !amt.Equal(decimal.RequireFromString("10")) {
			t.Errorf("charge amount = %s, want 10", amt)
		}
		if c.Source != models.ChargeSourceMonthly {
			t.Errorf("source = %q, want monthly", c.Source)
		}
		if c.PeriodYear != 2026 || c.PeriodMonth < 1 || c.PeriodMonth > 3 {
			t.Errorf("period = %d-%d, want 2026-[1..3]", c.PeriodYear, c.PeriodMonth)
		}
		if c.DueDate.Day() != 5 {
			t.Errorf("due day = %d, want 5", c.DueDate.Day())
		}
		if len(c.UserIDs) != 1 {
			t.Errorf("charge targets %d users, want 1", len(c.UserIDs))
		}
	}
}

func TestGenerateMonthlyCharges_InactiveSettings(t *testing.T) {
	club := feeClub("10", []int{1, 2, 3}, false)
	members := []primitive.ObjectID{primitive.NewObjectID()}

	if got := fees.GenerateMonthlyCharges(club, members, 2026, primitive.NewObjectID(), testNow); got != nil {
		t.Errorf("inactive settings generated %d charges, want none", len(got))
	}
}

func TestGenerateMonthlyCharges_IgnoresInvalidMonths(t *testing.T) {
	club := feeClub("10", []int{0, 3, 3, 13, 7}, true)
	members := []primitive.ObjectID{primitive.NewObjectID()}

	charges := fees.GenerateMonthlyCharges(club, members, 2026, primitive.NewObjectID(), testNow)
	if len(charges) != 2 {
		t.Fatalf("got %d charges, want 2 (months 3 and 7)", len(charges))
	}
	if charges[0].PeriodMonth != 3 || charges[1].PeriodMonth != 7 {
		t.Errorf("months = %d,%d, want 3,7", charges[0].PeriodMonth, charges[1].PeriodMonth)
	}
}

func TestGenerateMonthlyCharges_NoMembers(t *testing.T) {
	club := feeClub("10", []int{1}, true)
	if got := fees.GenerateMonthlyCharges(club, nil, 2026, primitive.NewObjectID(), testNow); got != nil {
		t.Errorf("no members generated %d charges", len(got))
	}
}
