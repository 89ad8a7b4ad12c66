package payments_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/features/payments"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestHandleRecord_AssignsReferenceAndNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	treasurer := fixtures.CreateMember(ctx, "Treasurer", "treasurer@example.com")
	payer := fixtures.CreateMember(ctx, "Payer", "payer@example.com")
	fixtures.CreateMembership(ctx, club.ID, treasurer.ID, "treasurer")
	fixtures.CreateMembership(ctx, club.ID, payer.ID, "member")

	h := payments.NewHandler(db, zap.NewNop())
	body := `{"user_id":"` + payer.ID.Hex() + `","amount":"25.00","currency":"usd","note":"June dues"}`
	req := testutil.NewAuthenticatedJSONRequest("POST", "/clubs/"+club.ID.Hex()+"/payments", body,
		testutil.UserWithID(treasurer.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRecord(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Reference string `json:"reference"`
		Currency  string `json:"currency"`
		Amount    string `json:"amount"`
	}
	if err := json.Unmarshal([]byte(rec.BodyString()), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := uuid.Parse(resp.Reference); err != nil {
		t.Errorf("reference %q is not a UUID: %v", resp.Reference, err)
	}
	if resp.Currency != "USD" {
		t.Errorf("currency: got %s, want USD", resp.Currency)
	}
	if resp.Amount != "25" {
		t.Errorf("amount: got %s, want 25", resp.Amount)
	}

	n, err := db.Collection("notifications").CountDocuments(ctx, bson.M{"user_id": payer.ID})
	if err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 notification for payer, got %d", n)
	}
}

func TestHandleRecord_NonMemberPayerRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	treasurer := fixtures.CreateMember(ctx, "Treasurer", "treasurer@example.com")
	outsider := fixtures.CreateMember(ctx, "Outsider", "outsider@example.com")
	fixtures.CreateMembership(ctx, club.ID, treasurer.ID, "treasurer")

	h := payments.NewHandler(db, zap.NewNop())
	body := `{"user_id":"` + outsider.ID.Hex() + `","amount":"10.00","currency":"USD"}`
	req := testutil.NewAuthenticatedJSONRequest("POST", "/clubs/"+club.ID.Hex()+"/payments", body,
		testutil.UserWithID(treasurer.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRecord(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "not a member")
}

func TestHandleRecord_PlainMemberForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	member := fixtures.CreateMember(ctx, "Member", "member@example.com")
	fixtures.CreateMembership(ctx, club.ID, member.ID, "member")

	h := payments.NewHandler(db, zap.NewNop())
	body := `{"user_id":"` + member.ID.Hex() + `","amount":"10.00","currency":"USD"}`
	req := testutil.NewAuthenticatedJSONRequest("POST", "/clubs/"+club.ID.Hex()+"/payments", body,
		testutil.UserWithID(member.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRecord(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleRecord_ChargeFromAnotherClubRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	other := fixtures.CreateClub(ctx, "Debate Club")
	treasurer := fixtures.CreateMember(ctx, "Treasurer", "treasurer@example.com")
	payer := fixtures.CreateMember(ctx, "Payer", "payer@example.com")
	fixtures.CreateMembership(ctx, club.ID, treasurer.ID, "treasurer")
	fixtures.CreateMembership(ctx, club.ID, payer.ID, "member")

	foreign := fixtures.CreateCharge(ctx, other.ID, "10.00",
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), payer.ID)

	h := payments.NewHandler(db, zap.NewNop())
	body := `{"user_id":"` + payer.ID.Hex() + `","amount":"10.00","currency":"USD","charge_id":"` + foreign.ID.Hex() + `"}`
	req := testutil.NewAuthenticatedJSONRequest("POST", "/clubs/"+club.ID.Hex()+"/payments", body,
		testutil.UserWithID(treasurer.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRecord(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "charge not found")
}

func TestServeList_MemberSeesOnlyOwnPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	alice := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	fixtures.CreateMembership(ctx, club.ID, alice.ID, "member")
	fixtures.CreateMembership(ctx, club.ID, bob.ID, "member")

	aliceRef := uuid.NewString()
	bobRef := uuid.NewString()
	fixtures.CreatePayment(ctx, club.ID, alice.ID, "20.00", aliceRef)
	fixtures.CreatePayment(ctx, club.ID, bob.ID, "30.00", bobRef)

	h := payments.NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequest("GET", "/clubs/"+club.ID.Hex()+"/payments",
		testutil.UserWithID(alice.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, aliceRef)
	if strings.Contains(rec.BodyString(), bobRef) {
		t.Error("member can see another member's payment")
	}
}

func TestServeList_TreasurerSeesAllPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club")
	treasurer := fixtures.CreateMember(ctx, "Treasurer", "treasurer@example.com")
	alice := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	fixtures.CreateMembership(ctx, club.ID, treasurer.ID, "treasurer")
	fixtures.CreateMembership(ctx, club.ID, alice.ID, "member")

	ref := uuid.NewString()
	fixtures.CreatePayment(ctx, club.ID, alice.ID, "20.00", ref)

	h := payments.NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequest("GET", "/clubs/"+club.ID.Hex()+"/payments",
		testutil.UserWithID(treasurer.ID, "member"))
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, ref)
}
