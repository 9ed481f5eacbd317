package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment id is a derived string ("KIT/001"), not an ObjectID — the sequence
// is scoped to the (crew, outreach) partition and assigned at creation time.
type Payment struct {
	ID            string             `bson:"_id" json:"id"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender        string             `bson:"gender" json:"gender"` // UNSPECIFIED, MALE, FEMALE
	Crew          string             `bson:"crew,omitempty" json:"crew,omitempty"`
	Unit          string             `bson:"unit,omitempty" json:"unit,omitempty"`
	Level         string             `bson:"level,omitempty" json:"level,omitempty"`
	PaidAmount    float64            `bson:"paid_amount" json:"paidAmount"`
	PendingAmount float64            `bson:"pending_amount" json:"pendingAmount"`
	PaymentStatus string             `bson:"payment_status" json:"paymentStatus"` // NOT_PAID, PENDING, PARTIAL, PAID
	OutreachID    primitive.ObjectID `bson:"outreach_id,omitempty" json:"outreachId,omitempty"`
	BankID        primitive.ObjectID `bson:"bank_id,omitempty" json:"bankId,omitempty"`
	ProofImages   []string           `bson:"proof_image" json:"proof_image"`
	IsDeleted     bool               `bson:"is_deleted" json:"isDeleted"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PaymentStats mirrors the dashboard cards: counts by status plus paid-amount
// sums, all scoped to the same filter as the payment list.
type PaymentStats struct {
	TotalPaid           int64   `json:"totalPaid"`
	TotalPending        int64   `json:"totalPending"`
	TotalPaidAmount     float64 `json:"totalPaidAmount"`
	PendingPaidAmount   float64 `json:"pendingPaidAmount"`
	CompletedPaidAmount float64 `json:"completedPaidAmount"`
}
