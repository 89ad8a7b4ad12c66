package notificationstore_test

import (
	"testing"

	notificationstore "github.com/dalemusser/clubhub/internal/app/store/notifications"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_AddMany_FansOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubID := primitive.NewObjectID()
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	err := store.AddMany(ctx, []primitive.ObjectID{u1, u2}, clubID,
		models.NotifyKindCharge, "New charge", "Monthly fee September 2026")
	if err != nil {
		t.Fatalf("AddMany failed: %v", err)
	}

	for _, uid := range []primitive.ObjectID{u1, u2} {
		got, err := store.ListByUser(ctx, uid, false, 0)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(got))
		}
		if got[0].Read() {
			t.Error("new notification should be unread")
		}
	}
}

func TestStore_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	if err := store.Add(ctx, models.Notification{
		UserID: uid,
		Kind:   models.NotifyKindGeneral,
		Title:  "Welcome",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list, err := store.ListByUser(ctx, uid, true, 0)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 unread, got %d", len(list))
	}

	if err := store.MarkRead(ctx, uid, list[0].ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	unread, err := store.CountUnread(ctx, uid)
	if err != nil {
		t.Fatalf("CountUnread failed: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread: got %d, want 0", unread)
	}
}

func TestStore_MarkRead_OtherUsersNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	if err := store.Add(ctx, models.Notification{
		UserID: owner,
		Kind:   models.NotifyKindGeneral,
		Title:  "Private",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list, err := store.ListByUser(ctx, owner, false, 0)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}

	err = store.MarkRead(ctx, primitive.NewObjectID(), list[0].ID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for foreign notification, got %v", err)
	}
}

func TestStore_MarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		if err := store.Add(ctx, models.Notification{
			UserID: uid,
			Kind:   models.NotifyKindGeneral,
			Title:  "n",
		}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	updated, err := store.MarkAllRead(ctx, uid)
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if updated != 3 {
		t.Errorf("updated: got %d, want 3", updated)
	}
}
