package activitystore

import (
	"context"
	"errors"
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
	return &Store{c: db.Collection("activities")}
}

var errEmptyTitle = errors.New("activity title is required")

// Create inserts a scheduled activity.
func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	if a.Title == "" {
		return models.Activity{}, errEmptyTitle
	}
	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// GetByID loads an activity by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var a models.Activity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByClub returns a club's activities in start order. When after is
// non-zero only activities starting at or after that time are returned,
// which is how the schedule screen requests "upcoming".
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID, after time.Time) ([]models.Activity, error) {
	filter := bson.M{"club_id": clubID}
	if !after.IsZero() {
		filter["starts_at"] = bson.M{"$gte": after}
	}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the editable activity fields.
type Update struct {
	Title    string
	Location string
	StartsAt time.Time
	Minutes  int
	Notes    string
}

// UpdateInfo rewrites an activity's details.
func (s *Store) UpdateInfo(ctx context.Context, clubID, id primitive.ObjectID, upd Update) error {
	if upd.Title == "" {
		return errEmptyTitle
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "club_id": clubID},
		bson.M{"$set": bson.M{
			"title":      upd.Title,
			"location":   upd.Location,
			"starts_at":  upd.StartsAt,
			"minutes":    upd.Minutes,
			"notes":      upd.Notes,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an activity. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, clubID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "club_id": clubID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
