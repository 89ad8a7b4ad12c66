// internal/domain/models/clubmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club roles. Managers run the club; treasurers additionally manage fees,
// charges, and payments; members can view their own balance.
const (
	ClubRoleManager   = "manager"
	ClubRoleTreasurer = "treasurer"
	ClubRoleMember    = "member"
)

// ClubMembership is the authoritative join between users and clubs.
// Exactly one document per (club_id, user_id); role is a scalar.
type ClubMembership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID `bson:"club_id" json:"club_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role      string             `bson:"role" json:"role"` // manager | treasurer | member
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
