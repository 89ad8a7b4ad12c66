package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithChiURLParams adds several chi URL parameters at once. Each call to
// WithChiURLParam replaces the route context, so multi-param routes need
// this variant.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given app-level role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin")
}

// CreateMember creates a test member user.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "member")
}

// CreateClub creates a test club with inactive fee settings.
func (f *Fixtures) CreateClub(ctx context.Context, name string) models.Club {
	f.t.Helper()

	now := time.Now().UTC()
	club := models.Club{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test club description",
		Status:      "active",
		CreatedByID: primitive.NewObjectID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("clubs").InsertOne(ctx, club); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return club
}

// CreateClubWithFees creates a test club with active monthly fees.
func (f *Fixtures) CreateClubWithFees(ctx context.Context, name, amount, currency string, months []int, dueDay int) models.Club {
	f.t.Helper()

	amt, err := primitive.ParseDecimal128(amount)
	if err != nil {
		f.t.Fatalf("bad fee amount %q: %v", amount, err)
	}

	now := time.Now().UTC()
	club := models.Club{
		ID:     primitive.NewObjectID(),
		Name:   name,
		NameCI: text.Fold(name),
		Status: "active",
		FeeSettings: models.FeeSettings{
			MonthlyFeeAmount: amt,
			Currency:         currency,
			ActiveMonths:     months,
			DueDay:           dueDay,
			IsActive:         true,
		},
		CreatedByID: primitive.NewObjectID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("clubs").InsertOne(ctx, club); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return club
}

// CreateMembership links a user to a club with the given club role.
func (f *Fixtures) CreateMembership(ctx context.Context, clubID, userID primitive.ObjectID, role string) models.ClubMembership {
	f.t.Helper()

	m := models.ClubMembership{
		ID:        primitive.NewObjectID(),
		ClubID:    clubID,
		UserID:    userID,
		Role:      role,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("club_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateCharge creates a charge for specific members.
func (f *Fixtures) CreateCharge(ctx context.Context, clubID primitive.ObjectID, amount string, due time.Time, userIDs ...primitive.ObjectID) models.Charge {
	f.t.Helper()

	amt, err := primitive.ParseDecimal128(amount)
	if err != nil {
		f.t.Fatalf("bad charge amount %q: %v", amount, err)
	}

	c := models.Charge{
		ID:           primitive.NewObjectID(),
		ClubID:       clubID,
		Description:  "Test charge",
		Amount:       amt,
		Currency:     "USD",
		DueDate:      due,
		AppliesToAll: len(userIDs) == 0,
		UserIDs:      userIDs,
		Source:       models.ChargeSourceCustom,
		CreatedByID:  primitive.NewObjectID(),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("charges").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test charge: %v", err)
	}
	return c
}

// CreatePayment records a payment for a member.
func (f *Fixtures) CreatePayment(ctx context.Context, clubID, userID primitive.ObjectID, amount, reference string) models.Payment {
	f.t.Helper()

	amt, err := primitive.ParseDecimal128(amount)
	if err != nil {
		f.t.Fatalf("bad payment amount %q: %v", amount, err)
	}

	p := models.Payment{
		ID:           primitive.NewObjectID(),
		ClubID:       clubID,
		UserID:       userID,
		Amount:       amt,
		Currency:     "USD",
		Reference:    reference,
		RecordedByID: primitive.NewObjectID(),
		RecordedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("payments").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}
	return p
}
