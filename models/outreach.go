package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Outreach struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Theme       string             `bson:"theme" json:"theme"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Date        *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	Fee         float64            `bson:"fee,omitempty" json:"fee,omitempty"`
	Flyer       string             `bson:"flyer,omitempty" json:"flyer,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
