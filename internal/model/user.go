package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account.
//
// ResetToken and ResetTokenExpiresAt are either both set (an outstanding
// password reset) or both nil. The repository mutates them together.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	Name                string        `bson:"name"`
	Email               string        `bson:"email"`
	PasswordHash        string        `bson:"password_hash"`
	ResetToken          *string       `bson:"reset_token,omitempty"`
	ResetTokenExpiresAt *time.Time    `bson:"reset_token_expires_at,omitempty"`
	CreatedAt           time.Time     `bson:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at"`
}
