package paymentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// ErrDuplicateReference is returned when a payment reference collides with
// an existing one. References are UUIDs, so this signals a retried request.
var ErrDuplicateReference = errors.New("a payment with this reference already exists")

// Create inserts a payment record.
func (s *Store) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = primitive.NewObjectID()
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Payment{}, ErrDuplicateReference
		}
		return models.Payment{}, err
	}
	return p, nil
}

// GetByID loads a payment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var p models.Payment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByClub returns all payments for a club, newest first.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Payment, error) {
	return s.list(ctx, bson.M{"club_id": clubID})
}

// ListByClubUser returns one member's payments in a club, newest first.
func (s *Store) ListByClubUser(ctx context.Context, clubID, userID primitive.ObjectID) ([]models.Payment, error) {
	return s.list(ctx, bson.M{"club_id": clubID, "user_id": userID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
