// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is an organizational unit with members, fee settings, and an
// activity schedule.
type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MeetingInfo string             `bson:"meeting_info,omitempty" json:"meeting_info,omitempty"`
	Status      string             `bson:"status" json:"status"` // active | archived

	FeeSettings FeeSettings `bson:"fee_settings" json:"fee_settings"`

	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// FeeSettings is a club's recurring-charge configuration. MonthlyFeeAmount is
// a decimal stored as Decimal128; ActiveMonths holds month numbers 1..12.
// DueDay is capped at 28 so every active month has a valid due date.
type FeeSettings struct {
	MonthlyFeeAmount primitive.Decimal128 `bson:"monthly_fee_amount" json:"monthly_fee_amount"`
	Currency         string               `bson:"currency" json:"currency"` // ISO 4217, e.g. "USD"
	ActiveMonths     []int                `bson:"active_months" json:"active_months"`
	DueDay           int                  `bson:"due_day" json:"due_day"` // 1..28
	IsActive         bool                 `bson:"is_active" json:"is_active"`
}

// MonthActive reports whether fees are collected in the given month (1..12).
func (f FeeSettings) MonthActive(month int) bool {
	for _, m := range f.ActiveMonths {
		if m == month {
			return true
		}
	}
	return false
}
