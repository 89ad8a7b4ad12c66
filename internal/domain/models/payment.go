// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records money received from a member. Reference is a UUID string
// handed back to the client as a receipt number.
type Payment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ClubID    primitive.ObjectID   `bson:"club_id" json:"club_id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Amount    primitive.Decimal128 `bson:"amount" json:"amount"`
	Currency  string               `bson:"currency" json:"currency"`
	ChargeID  *primitive.ObjectID  `bson:"charge_id,omitempty" json:"charge_id,omitempty"`
	Reference string               `bson:"reference" json:"reference"`
	Note      string               `bson:"note,omitempty" json:"note,omitempty"`

	RecordedByID primitive.ObjectID `bson:"recorded_by_id" json:"recorded_by_id"`
	RecordedAt   time.Time          `bson:"recorded_at" json:"recorded_at"`
}
