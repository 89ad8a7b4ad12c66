package notificationstore

import (
	"context"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Add inserts a single notification.
func (s *Store) Add(ctx context.Context, n models.Notification) error {
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, n)
	return err
}

// AddMany fans one message out to several users. Used when a charge is
// created or a payment recorded.
func (s *Store) AddMany(ctx context.Context, userIDs []primitive.ObjectID, clubID primitive.ObjectID, kind, title, body string) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(userIDs))
	for _, uid := range userIDs {
		docs = append(docs, models.Notification{
			ID:        primitive.NewObjectID(),
			UserID:    uid,
			ClubID:    clubID,
			Kind:      kind,
			Title:     title,
			Body:      body,
			CreatedAt: now,
		})
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}

// ListByUser returns a user's notifications, newest first. When unreadOnly
// is set, notifications already marked read are excluded.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int64) ([]models.Notification, error) {
	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read_at"] = nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountUnread returns the number of unread notifications for a user.
func (s *Store) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID, "read_at": nil})
}

// MarkRead stamps a notification as read. Scoped to the owning user so one
// user cannot mark another's notifications. Returns mongo.ErrNoDocuments
// when the notification does not exist or belongs to someone else.
func (s *Store) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllRead stamps every unread notification for a user. Returns the
// number updated.
func (s *Store) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "read_at": nil},
		bson.M{"$set": bson.M{"read_at": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
