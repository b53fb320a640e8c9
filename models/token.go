package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetTokenTTL bounds how long a password-reset token stays valid. The
// reset_tokens collection also carries a TTL index with the same window so
// stale rows are removed automatically.
const ResetTokenTTL = time.Hour

// ResetToken stores only the sha256 of the token that was emailed out.
type ResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	TokenHash string        `bson:"tokenHash"`
	CreatedAt time.Time     `bson:"createdAt"`
}
