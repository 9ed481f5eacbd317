package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bank is a donation/payment destination account. IsPublic gates whether the
// public registration form may list it.
type Bank struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Bank       string             `bson:"bank" json:"bank"`
	AcctNo     string             `bson:"acct_no" json:"acctNo"`
	OutreachID primitive.ObjectID `bson:"outreach_id,omitempty" json:"outreachId,omitempty"`
	IsPublic   bool               `bson:"is_public" json:"isPublic"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
