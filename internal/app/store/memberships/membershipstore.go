package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
	clubs *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("club_memberships"),
		users: db.Collection("users"),
		clubs: db.Collection("clubs"),
	}
}

var (
	errBadRole = errors.New(`role must be "manager", "treasurer", or "member"`)

	// ErrDuplicateMembership is returned when the user already belongs to the club.
	ErrDuplicateMembership = errors.New("user is already a member of this club")
)

// Add creates a membership after verifying the club and user exist.
func (s *Store) Add(ctx context.Context, clubID, userID primitive.ObjectID, role string) error {
	if !clubpolicy.ValidRole(role) {
		return errBadRole
	}
	if err := s.clubs.FindOne(ctx, bson.M{"_id": clubID}).Err(); err != nil {
		return err
	}
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		return err
	}

	doc := bson.M{
		"club_id":    clubID,
		"user_id":    userID,
		"role":       role,
		"status":     status.Active,
		"created_at": time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// Entry represents a user to add to a club.
type Entry struct {
	UserID primitive.ObjectID
	Role   string
}

// AddBatchResult contains counts from a batch membership add.
type AddBatchResult struct {
	Added      int
	Duplicates int
}

// AddBatch adds multiple memberships in one insert. Caller must have already
// verified the users exist. Duplicates are counted, not treated as errors.
func (s *Store) AddBatch(ctx context.Context, clubID primitive.ObjectID, entries []Entry) (AddBatchResult, error) {
	if len(entries) == 0 {
		return AddBatchResult{}, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		if !clubpolicy.ValidRole(e.Role) {
			return AddBatchResult{}, errBadRole
		}
		docs = append(docs, bson.M{
			"club_id":    clubID,
			"user_id":    e.UserID,
			"role":       e.Role,
			"status":     status.Active,
			"created_at": now,
		})
	}

	// ordered:false attempts every insert even when some hit the unique
	// (club_id, user_id) index.
	opts := options.InsertMany().SetOrdered(false)
	result, err := s.c.InsertMany(ctx, docs, opts)

	added := 0
	if result != nil {
		added = len(result.InsertedIDs)
	}
	duplicates := len(entries) - added

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

// Remove deletes the membership for (clubID, userID). Returns the number of
// documents deleted (0 or 1).
func (s *Store) Remove(ctx context.Context, clubID, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"club_id": clubID, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetRole changes a member's club role.
func (s *Store) SetRole(ctx context.Context, clubID, userID primitive.ObjectID, role string) error {
	if !clubpolicy.ValidRole(role) {
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"club_id": clubID, "user_id": userID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetRole returns the user's role in the club, or "" when the user is not
// a member.
func (s *Store) GetRole(ctx context.Context, clubID, userID primitive.ObjectID) (string, error) {
	var m models.ClubMembership
	err := s.c.FindOne(ctx, bson.M{"club_id": clubID, "user_id": userID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

// ListByClub returns all memberships for a club, optionally filtered by role.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID, role string) ([]models.ClubMembership, error) {
	filter := bson.M{"club_id": clubID}
	if role != "" {
		filter["role"] = role
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.ClubMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListByUser returns all memberships for a user.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ClubMembership, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.ClubMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// MemberIDs returns the user IDs of everyone in the club.
func (s *Store) MemberIDs(ctx context.Context, clubID primitive.ObjectID) ([]primitive.ObjectID, error) {
	memberships, err := s.ListByClub(ctx, clubID, "")
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// CountByClub returns the count of memberships for a club, optionally
// filtered by role.
func (s *Store) CountByClub(ctx context.Context, clubID primitive.ObjectID, role string) (int64, error) {
	filter := bson.M{"club_id": clubID}
	if role != "" {
		filter["role"] = role
	}
	return s.c.CountDocuments(ctx, filter)
}

// DeleteByClub removes all memberships for a club. Returns the number of
// documents deleted.
func (s *Store) DeleteByClub(ctx context.Context, clubID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"club_id": clubID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
