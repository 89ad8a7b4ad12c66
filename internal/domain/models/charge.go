// internal/domain/models/charge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Charge sources.
const (
	ChargeSourceMonthly = "monthly" // generated from fee settings
	ChargeSourceCustom  = "custom"  // one-off charge created by a manager/treasurer
)

// Charge is an amount owed to a club by one or more members. Charges are
// immutable once created; there is no edit path, only deletion by a manager.
//
// Monthly charges carry PeriodYear/PeriodMonth and are unique per
// (club_id, user_id, period_year, period_month), which is what makes
// regeneration for an already-processed year a no-op.
type Charge struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ClubID      primitive.ObjectID   `bson:"club_id" json:"club_id"`
	Description string               `bson:"description" json:"description"`
	Amount      primitive.Decimal128 `bson:"amount" json:"amount"`
	Currency    string               `bson:"currency" json:"currency"`
	DueDate     time.Time            `bson:"due_date" json:"due_date"`

	// Either AppliesToAll is true or UserIDs is non-empty.
	AppliesToAll bool                 `bson:"applies_to_all" json:"applies_to_all"`
	UserIDs      []primitive.ObjectID `bson:"user_ids,omitempty" json:"user_ids,omitempty"`

	Source      string `bson:"source" json:"source"` // monthly | custom
	PeriodYear  int    `bson:"period_year,omitempty" json:"period_year,omitempty"`
	PeriodMonth int    `bson:"period_month,omitempty" json:"period_month,omitempty"`

	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// AppliesTo reports whether the charge applies to the given user.
func (c Charge) AppliesTo(userID primitive.ObjectID) bool {
	if c.AppliesToAll {
		return true
	}
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
