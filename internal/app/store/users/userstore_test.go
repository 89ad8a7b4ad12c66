package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "  Avery Chen  ",
		Email:    "Avery@Example.COM",
		Role:     "member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.FullName != "Avery Chen" {
		t.Errorf("FullName: got %q", created.FullName)
	}
	if created.Email != "avery@example.com" {
		t.Errorf("Email not normalized: %q", created.Email)
	}
	if created.Status != "active" {
		t.Errorf("Status: got %q, want active", created.Status)
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FullName: "Bad Role",
		Email:    "badrole@example.com",
		Role:     "superuser",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FullName: "User One",
		Email:    "duplicate@example.com",
		Role:     "member",
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same address, different case, must still collide on email_ci.
	_, err = store.Create(ctx, models.User{
		FullName: "User Two",
		Email:    "Duplicate@Example.com",
		Role:     "member",
	})
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Lookup User",
		Email:    "lookup@example.com",
		Role:     "member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "LOOKUP@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got wrong user: %v", got.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_SetThemeMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Theme User",
		Email:    "theme@example.com",
		Role:     "member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetThemeMode(ctx, created.ID, "dark_blue"); err != nil {
		t.Fatalf("SetThemeMode failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ThemeMode != "dark_blue" {
		t.Errorf("ThemeMode: got %q", got.ThemeMode)
	}
}

func TestStore_EnsureAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.EnsureAdmin(ctx, "Bootstrap Admin", "admin@example.com", "hash")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if !created {
		t.Error("expected first EnsureAdmin to create the account")
	}

	created, err = store.EnsureAdmin(ctx, "Bootstrap Admin", "admin@example.com", "hash")
	if err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}
	if created {
		t.Error("second EnsureAdmin should be a no-op")
	}

	u, err := store.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("Role: got %q, want admin", u.Role)
	}
}
