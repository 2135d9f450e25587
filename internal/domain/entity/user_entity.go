package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for accounts. Passwords are stored as bcrypt
// hashes in Password. IsAdmin is the single authorization flag carried into
// bearer tokens; there is no separate role table.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	IsAdmin  bool               `bson:"is_admin" json:"isAdmin"`

	// Password reset state lives on the document. The token is cleared on a
	// successful reset; an expired token is treated the same as no token.
	ResetPasswordToken  string    `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpire time.Time `bson:"reset_password_expire,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
