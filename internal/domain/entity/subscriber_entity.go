package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber is a newsletter mailing-list entry. Emails are unique. A
// subscriber is never deleted; unsubscribing flips IsActive via the token.
type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	SubscribedAt     time.Time          `bson:"subscribed_at" json:"subscribedAt"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	UnsubscribeToken string             `bson:"unsubscribe_token" json:"-"`
}
