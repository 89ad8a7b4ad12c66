package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, name, id, ok := authz.UserCtx(req)
	if ok {
		t.Fatal("expected ok=false for anonymous request")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("got (%q, %q, %v), want visitor defaults", role, name, id)
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	uid := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   uid.Hex(),
		Name: "Jamie",
		Role: "Admin",
	})

	role, name, id, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("role = %q, want lowercased admin", role)
	}
	if name != "Jamie" || id != uid {
		t.Errorf("got (%q, %v), want (Jamie, %v)", name, id, uid)
	}
}

func TestUserCtx_MalformedIDFailsClosed(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-object-id", Role: "admin"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("malformed session ID should fail closed")
	}
	if authz.IsAdmin(req) {
		t.Error("IsAdmin should be false for malformed session ID")
	}
}

func TestIsAdmin(t *testing.T) {
	admin := httptest.NewRequest("GET", "/", nil)
	admin = auth.WithTestUser(admin, &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "admin"})
	if !authz.IsAdmin(admin) {
		t.Error("IsAdmin = false for admin user")
	}

	member := httptest.NewRequest("GET", "/", nil)
	member = auth.WithTestUser(member, &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "member"})
	if authz.IsAdmin(member) {
		t.Error("IsAdmin = true for member user")
	}
}
