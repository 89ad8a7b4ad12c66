// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in ClubHub. App-level Role is "admin" or
// "member"; what a user can do inside a club is governed by their
// ClubMembership role, not this field.
//
// ThemeMode is the persisted theme preference ("light", "dark", "dark_blue",
// "system"). The active theme is derived per request and never stored.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`     // admin | member
	Status       string             `bson:"status" json:"status"` // active | disabled
	ThemeMode    string             `bson:"theme_mode,omitempty" json:"theme_mode,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
