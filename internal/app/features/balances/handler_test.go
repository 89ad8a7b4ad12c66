package balances_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/features/balances"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.uber.org/zap"
)

type balanceRow struct {
	UserID         string `json:"user_id"`
	TotalOwed      string `json:"total_owed"`
	TotalPaid      string `json:"total_paid"`
	OverdueCharges string `json:"overdue_charges"`
	Balance        string `json:"balance"`
	Status         string `json:"status"`
}

type balanceList struct {
	Balances []balanceRow `json:"balances"`
}

func fetchBalances(t *testing.T, h *balances.Handler, clubIDHex string, user testutil.TestUser) balanceList {
	t.Helper()
	req := testutil.NewAuthenticatedRequest("GET", "/clubs/"+clubIDHex+"/balances", user)
	req = testutil.WithChiURLParam(req, "id", clubIDHex)
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var out balanceList
	if err := json.Unmarshal([]byte(rec.BodyString()), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestServeList_TreasurerSeesWholeRoster(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	treasurer := fixtures.CreateMember(ctx, "Treasurer", "treasurer@example.com")
	alice := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	fixtures.CreateMembership(ctx, club.ID, treasurer.ID, "treasurer")
	fixtures.CreateMembership(ctx, club.ID, alice.ID, "member")
	fixtures.CreateMembership(ctx, club.ID, bob.ID, "member")

	pastDue := time.Now().UTC().AddDate(0, -1, 0)
	fixtures.CreateCharge(ctx, club.ID, "20.00", pastDue, alice.ID)
	fixtures.CreateCharge(ctx, club.ID, "20.00", pastDue, bob.ID)
	fixtures.CreatePayment(ctx, club.ID, alice.ID, "20.00", "ref-alice-1")

	h := balances.NewHandler(db, zap.NewNop())
	out := fetchBalances(t, h, club.ID.Hex(), testutil.UserWithID(treasurer.ID, "member"))

	if len(out.Balances) != 3 {
		t.Fatalf("rows: got %d, want 3", len(out.Balances))
	}

	byUser := make(map[string]balanceRow, len(out.Balances))
	for _, b := range out.Balances {
		byUser[b.UserID] = b
	}

	if got := byUser[alice.ID.Hex()]; got.Balance != "0" || got.Status != "paid" {
		t.Errorf("alice: balance=%s status=%s, want 0/paid", got.Balance, got.Status)
	}
	if got := byUser[bob.ID.Hex()]; got.Balance != "-20" || got.Status != "overdue" {
		t.Errorf("bob: balance=%s status=%s, want -20/overdue", got.Balance, got.Status)
	}
}

func TestServeList_MemberSeesOnlyOwnRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	alice := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	fixtures.CreateMembership(ctx, club.ID, alice.ID, "member")
	fixtures.CreateMembership(ctx, club.ID, bob.ID, "member")

	pastDue := time.Now().UTC().AddDate(0, -1, 0)
	fixtures.CreateCharge(ctx, club.ID, "15.00", pastDue, alice.ID)
	fixtures.CreateCharge(ctx, club.ID, "99.00", pastDue, bob.ID)

	h := balances.NewHandler(db, zap.NewNop())
	out := fetchBalances(t, h, club.ID.Hex(), testutil.UserWithID(alice.ID, "member"))

	if len(out.Balances) != 1 {
		t.Fatalf("rows: got %d, want 1", len(out.Balances))
	}
	if out.Balances[0].UserID != alice.ID.Hex() {
		t.Errorf("row user: got %s, want %s", out.Balances[0].UserID, alice.ID.Hex())
	}
	if out.Balances[0].TotalOwed != "15" {
		t.Errorf("total owed: got %s, want 15", out.Balances[0].TotalOwed)
	}
}

func TestServeList_FutureChargesNotOwedYet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	alice := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	fixtures.CreateMembership(ctx, club.ID, alice.ID, "member")

	future := time.Now().UTC().AddDate(0, 2, 0)
	fixtures.CreateCharge(ctx, club.ID, "50.00", future, alice.ID)

	h := balances.NewHandler(db, zap.NewNop())
	out := fetchBalances(t, h, club.ID.Hex(), testutil.UserWithID(alice.ID, "member"))

	if len(out.Balances) != 1 {
		t.Fatalf("rows: got %d, want 1", len(out.Balances))
	}
	row := out.Balances[0]
	if row.TotalOwed != "0" || row.Status != "paid" {
		t.Errorf("future charge counted early: owed=%s status=%s", row.TotalOwed, row.Status)
	}
}

func TestServeList_NonMemberForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	outsider := fixtures.CreateMember(ctx, "Outsider", "outsider@example.com")

	h := balances.NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequest("GET", "/clubs/"+club.ID.Hex()+"/balances",
		testutil.UserWithID(outsider.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}
