// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold. Role is chosen at sign-up and has no
// update path afterwards.
const (
	RoleStudent = "student"
	RoleClub    = "club"
)

// User represents a student or club/society account. One profile is
// created per auth identity at sign-up and never deleted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // student | club

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// IsValidRole reports whether value is a recognized account role.
func IsValidRole(value string) bool {
	return value == RoleStudent || value == RoleClub
}

// DisplayName is the label shown for a user anywhere a registrant or
// comment author appears: the profile name, else the email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
