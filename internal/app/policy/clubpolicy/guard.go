package clubpolicy

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccessFor loads the signed-in user's club role from the database and
// combines it with their app-level role. ok is false when there is no
// signed-in user in the request context.
func AccessFor(ctx context.Context, db *mongo.Database, r *http.Request, clubID primitive.ObjectID) (Access, primitive.ObjectID, bool) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return Access{}, primitive.NilObjectID, false
	}

	clubRole := ""
	var m struct {
		Role string `bson:"role"`
	}
	err := db.Collection("club_memberships").
		FindOne(ctx, bson.M{"club_id": clubID, "user_id": userID}).
		Decode(&m)
	if err == nil {
		clubRole = m.Role
	} else if err != mongo.ErrNoDocuments {
		// Fail closed on lookup errors: the user keeps only app-level access.
		return ForRole(role, ""), userID, true
	}

	return ForRole(role, clubRole), userID, true
}
