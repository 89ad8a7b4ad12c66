package chargestore

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
	return &Store{c: db.Collection("charges")}
}

var errBadSource = errors.New(`source must be "monthly" or "custom"`)

// Create inserts a single charge. Amount and target validation happens in
// the handler.
func (s *Store) Create(ctx context.Context, c models.Charge) (models.Charge, error) {
	if c.Source != models.ChargeSourceMonthly && c.Source != models.ChargeSourceCustom {
		return models.Charge{}, errBadSource
	}
	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Charge{}, err
	}
	return c, nil
}

// AddBatchResult contains counts from a batch charge insert.
type AddBatchResult struct {
	Added      int
	Duplicates int
}

// AddBatch inserts charges with ordered:false so every document is attempted
// even when some collide with the unique monthly-period index. Duplicates
// are counted, not treated as errors; this is what makes monthly generation
// safe to repeat for a year that was already processed.
func (s *Store) AddBatch(ctx context.Context, charges []models.Charge) (AddBatchResult, error) {
	if len(charges) == 0 {
		return AddBatchResult{}, nil
	}

	docs := make([]interface{}, 0, len(charges))
	for i := range charges {
		if charges[i].Source != models.ChargeSourceMonthly && charges[i].Source != models.ChargeSourceCustom {
			return AddBatchResult{}, errBadSource
		}
		charges[i].ID = primitive.NewObjectID()
		docs = append(docs, charges[i])
	}

	opts := options.InsertMany().SetOrdered(false)
	result, err := s.c.InsertMany(ctx, docs, opts)

	added := 0
	if result != nil {
		added = len(result.InsertedIDs)
	}
	duplicates := len(charges) - added

	if err != nil {
		if bulkErr, ok := err.(mongo.BulkWriteException); ok {
			for _, we := range bulkErr.WriteErrors {
				if we.Code != 11000 {
					return AddBatchResult{Added: added, Duplicates: duplicates}, err
				}
			}
			return AddBatchResult{Added: added, Duplicates: duplicates}, nil
		}
		return AddBatchResult{Added: added, Duplicates: duplicates}, err
	}
	return AddBatchResult{Added: added, Duplicates: duplicates}, nil
}

// GetByID loads a charge by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Charge, error) {
	var c models.Charge
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByClub returns all charges for a club sorted by due date descending.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Charge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"club_id": clubID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var charges []models.Charge
	if err := cur.All(ctx, &charges); err != nil {
		return nil, err
	}
	return charges, nil
}

// ListForUser returns the club's charges that apply to a specific member,
// sorted by due date descending.
func (s *Store) ListForUser(ctx context.Context, clubID, userID primitive.ObjectID) ([]models.Charge, error) {
	filter := bson.M{
		"club_id": clubID,
		"$or": []bson.M{
			{"applies_to_all": true},
			{"user_ids": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var charges []models.Charge
	if err := cur.All(ctx, &charges); err != nil {
		return nil, err
	}
	return charges, nil
}

// Delete removes a charge. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, clubID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "club_id": clubID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountForPeriod reports how many monthly charges exist for a club in a
// given year, for the generation summary.
func (s *Store) CountForPeriod(ctx context.Context, clubID primitive.ObjectID, year int) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"club_id":     clubID,
		"source":      models.ChargeSourceMonthly,
		"period_year": year,
	})
}
