// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds.
const (
	NotifyKindCharge   = "charge"
	NotifyKindPayment  = "payment"
	NotifyKindActivity = "activity"
	NotifyKindGeneral  = "general"
)

// Notification is an in-app message for one user. ReadAt is nil until the
// user marks it read.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ClubID    primitive.ObjectID `bson:"club_id,omitempty" json:"club_id,omitempty"`
	Kind      string             `bson:"kind" json:"kind"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}

// Read reports whether the notification has been marked read.
func (n Notification) Read() bool { return n.ReadAt != nil }
