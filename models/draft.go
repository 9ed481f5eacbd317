package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft holds in-progress registration wizard state so a visitor can resume
// after a reload. Keyed by a client-generated token and cleared on submit;
// abandoned drafts expire via a TTL index.
type Draft struct {
	Token      string             `bson:"_id" json:"token"`
	Step       int                `bson:"step" json:"step"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Gender     string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Crew       string             `bson:"crew,omitempty" json:"crew,omitempty"`
	Unit       string             `bson:"unit,omitempty" json:"unit,omitempty"`
	Level      string             `bson:"level,omitempty" json:"level,omitempty"`
	Amount     float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	BankID     primitive.ObjectID `bson:"bank_id,omitempty" json:"bankId,omitempty"`
	OutreachID primitive.ObjectID `bson:"outreach_id,omitempty" json:"outreachId,omitempty"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
