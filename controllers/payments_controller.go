package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/isaacrobert33/outreach-logistics/config"
	models "github.com/isaacrobert33/outreach-logistics/models"
	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

const minPaidAmount = 500

// createRetries bounds the allocate-then-insert loop; the unique _id index
// turns a concurrent allocation into a duplicate-key error we retry on.
const createRetries = 5

var paymentStatuses = map[string]bool{
	"NOT_PAID": true,
	"PENDING":  true,
	"PARTIAL":  true,
	"PAID":     true,
}

var genders = map[string]bool{
	"UNSPECIFIED": true,
	"MALE":        true,
	"FEMALE":      true,
}

const duplicateContactMessage = "Email or Phone number already exists."

type paymentInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Gender        string   `json:"gender"`
	Crew          string   `json:"crew"`
	Unit          string   `json:"unit"`
	Level         string   `json:"level"`
	PaidAmount    *float64 `json:"paidAmount"`
	PendingAmount *float64 `json:"pendingAmount"`
	PaymentStatus string   `json:"paymentStatus"`
	OutreachID    string   `json:"outreachId"`
	BankID        string   `json:"bankId"`
	DraftToken    string   `json:"draftToken"`
}

// validatePaymentInput returns the validation message, or "" when the input
// is acceptable.
func validatePaymentInput(in *paymentInput) string {
	if in.Gender != "" && !genders[in.Gender] {
		return "gender must be one of UNSPECIFIED, MALE, FEMALE"
	}
	if in.PaymentStatus != "" && !paymentStatuses[in.PaymentStatus] {
		return "paymentStatus must be one of NOT_PAID, PENDING, PARTIAL, PAID"
	}
	if in.PaidAmount != nil && *in.PaidAmount < minPaidAmount {
		return "paidAmount must be at least 500"
	}
	if in.Phone != "" && len(in.Phone) < 10 {
		return "phone number must be at least 10 digits"
	}
	return ""
}

// newPaymentFromInput applies the registration defaults. The id is assigned
// separately by the allocator.
func newPaymentFromInput(in *paymentInput, outreachID, bankID primitive.ObjectID, now time.Time) models.Payment {
	p := models.Payment{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Gender:        in.Gender,
		Crew:          in.Crew,
		Unit:          in.Unit,
		Level:         in.Level,
		PaymentStatus: in.PaymentStatus,
		OutreachID:    outreachID,
		BankID:        bankID,
		ProofImages:   []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Gender == "" {
		p.Gender = "UNSPECIFIED"
	}
	if p.Unit == "" {
		p.Unit = "President"
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = "NOT_PAID"
	}
	if in.PaidAmount != nil {
		p.PaidAmount = *in.PaidAmount
	}
	if in.PendingAmount != nil {
		p.PendingAmount = *in.PendingAmount
	}
	return p
}

// duplicateContactFilter matches non-deleted payments sharing the given email
// or phone. ok is false when neither is supplied.
func duplicateContactFilter(email, phone string) (bson.M, bool) {
	var contact []bson.M
	if email != "" {
		contact = append(contact, bson.M{"email": email})
	}
	if phone != "" {
		contact = append(contact, bson.M{"phone": phone})
	}
	if len(contact) == 0 {
		return nil, false
	}
	return bson.M{
		"is_deleted": bson.M{"$ne": true},
		"$or":        contact,
	}, true
}

// buildPaymentPatch translates a partial update into a mongo update document,
// merging only the supplied fields. A pendingAmount value becomes a $inc on
// the stored amount (a top-up awaiting approval) and forces the status to
// PENDING. ok is false when the patch carries no changes.
func buildPaymentPatch(in *paymentInput, now time.Time) (bson.M, bool) {
	set := bson.M{"updated_at": now}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if in.Phone != "" {
		set["phone"] = in.Phone
	}
	if in.Gender != "" {
		set["gender"] = in.Gender
	}
	if in.Crew != "" {
		set["crew"] = in.Crew
	}
	if in.Unit != "" {
		set["unit"] = in.Unit
	}
	if in.Level != "" {
		set["level"] = in.Level
	}
	if in.PaidAmount != nil {
		set["paid_amount"] = *in.PaidAmount
	}
	// Admin edits may set any status; transitions are deliberately unguarded.
	if in.PaymentStatus != "" {
		set["payment_status"] = in.PaymentStatus
	}

	update := bson.M{"$set": set}
	if in.PendingAmount != nil {
		set["payment_status"] = "PENDING"
		update["$inc"] = bson.M{"pending_amount": *in.PendingAmount}
	}

	return update, len(set) > 1 || in.PendingAmount != nil
}

// buildPaymentFilter translates the admin list parameters into a bson filter.
// "*" (or empty) means unfiltered for every dimension; the free-text OR clause
// is omitted entirely when unset. Soft-deleted rows are always excluded.
func buildPaymentFilter(q, status, outreach, bank, gender string) bson.M {
	filter := bson.M{"is_deleted": bson.M{"$ne": true}}
	if q != "" && q != "*" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q, "$options": "i"}},
			{"email": bson.M{"$regex": q, "$options": "i"}},
		}
	}
	if status != "" && status != "*" {
		filter["payment_status"] = status
	}
	if outreach != "" && outreach != "*" {
		if oid, err := primitive.ObjectIDFromHex(outreach); err == nil {
			filter["outreach_id"] = oid
		}
	}
	if bank != "" && bank != "*" {
		if oid, err := primitive.ObjectIDFromHex(bank); err == nil {
			filter["bank_id"] = oid
		}
	}
	if gender != "" && gender != "*" {
		filter["gender"] = gender
	}
	return filter
}

// lastPaymentID finds the most recently created payment id in the
// (crew, outreach) partition, or "" when the partition is empty.
func lastPaymentID(ctx context.Context, col *mongo.Collection, crew string, outreachID interface{}) (string, error) {
	partition := bson.M{"outreach_id": outreachID}
	if crew == "" {
		// empty crew is stored with the field omitted; nil matches missing
		partition["crew"] = nil
	} else {
		partition["crew"] = crew
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var last models.Payment
	err := col.FindOne(ctx, partition, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.ID, nil
}

// ---------------- CREATE ----------------
func CreatePayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if msg := validatePaymentInput(&input); msg != "" {
			utils.RespondMessage(c, http.StatusBadRequest, msg)
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		col := db.Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Reject duplicate contact info among non-deleted payments ---
		if dup, ok := duplicateContactFilter(input.Email, input.Phone); ok {
			count, err := col.CountDocuments(ctx, dup)
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "could not check contact info: "+err.Error())
				return
			}
			if count > 0 {
				utils.RespondMessage(c, http.StatusBadRequest, duplicateContactMessage)
				return
			}
		}

		var outreachID primitive.ObjectID
		var partitionOutreach interface{}
		if input.OutreachID != "" {
			oid, err := primitive.ObjectIDFromHex(input.OutreachID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
				return
			}
			outreachID = oid
			partitionOutreach = oid
		}
		var bankID primitive.ObjectID
		if input.BankID != "" {
			oid, err := primitive.ObjectIDFromHex(input.BankID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid bank id")
				return
			}
			bankID = oid
		}

		payment := newPaymentFromInput(&input, outreachID, bankID, time.Now())

		// --- Allocate id and insert; retry on a concurrent allocation ---
		inserted := false
		for attempt := 0; attempt < createRetries; attempt++ {
			prev, err := lastPaymentID(ctx, col, input.Crew, partitionOutreach)
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "could not allocate payment id: "+err.Error())
				return
			}
			payment.ID = utils.NextPaymentID(prev, input.Crew)

			_, err = col.InsertOne(ctx, payment)
			if err == nil {
				inserted = true
				break
			}
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			utils.RespondMessage(c, http.StatusInternalServerError, "could not create payment: "+err.Error())
			return
		}
		if !inserted {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not allocate a unique payment id")
			return
		}

		utils.PaymentsCreated.Inc()

		// Clear the wizard draft on successful submit
		if input.DraftToken != "" {
			if _, err := db.Collection("drafts").DeleteOne(ctx, bson.M{"_id": input.DraftToken}); err != nil {
				log.Printf("could not clear draft %s: %v", input.DraftToken, err)
			}
		}

		if payment.Email != "" {
			go func(p models.Payment) {
				if err := utils.SendRegistrationReceipt(p.Email, p.Name, p.ID, p.PaidAmount); err != nil {
					log.Printf("receipt email for %s failed: %v", p.ID, err)
				}
			}(payment)
		}

		utils.Respond(c, http.StatusCreated, payment)
	}
}

// ---------------- LIST ----------------
func ListPayments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := buildPaymentFilter(
			c.DefaultQuery("q", "*"),
			c.DefaultQuery("status", "*"),
			c.DefaultQuery("outreach", "*"),
			c.DefaultQuery("bank", "*"),
			c.DefaultQuery("gender", "*"),
		)

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not fetch payments: "+err.Error())
			return
		}

		var payments []models.Payment
		if err := cursor.All(ctx, &payments); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not decode payments: "+err.Error())
			return
		}

		if len(payments) == 0 {
			utils.Respond(c, http.StatusOK, []models.Payment{})
			return
		}

		// --- ETag from the most recently updated payment ---
		latest := payments[0]
		for _, p := range payments {
			if p.UpdatedAt.After(latest.UpdatedAt) {
				latest = p
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		utils.Respond(c, http.StatusOK, payments)
	}
}

// ---------------- GET ----------------
// Soft-deleted payments stay retrievable by direct id lookup.
func GetPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var payment models.Payment
		err := cfg.MongoClient.Database(cfg.DBName).
			Collection("payments").
			FindOne(ctx, bson.M{"_id": id}).
			Decode(&payment)
		if err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		etag := utils.GenerateETag(payment.ID, payment.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		utils.Respond(c, http.StatusOK, payment)
	}
}

// ---------------- UPDATE ----------------
// Merges only the supplied fields. A pendingAmount patch is added onto the
// stored value (a top-up awaiting approval) and forces the status to PENDING.
func UpdatePayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if msg := validatePaymentInput(&input); msg != "" {
			utils.RespondMessage(c, http.StatusBadRequest, msg)
			return
		}

		update, ok := buildPaymentPatch(&input, time.Now())
		if !ok {
			utils.RespondMessage(c, http.StatusBadRequest, "no fields to update")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to update payment: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		var updated models.Payment
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to retrieve updated payment")
			return
		}

		utils.Respond(c, http.StatusAccepted, updated)
	}
}

// ---------------- APPROVE PENDING ----------------
// Moves pendingAmount into paidAmount and resets it to zero as one atomic
// pipeline update, so concurrent admin edits cannot lose a top-up.
func ApprovePendingPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"paid_amount":    bson.M{"$add": bson.A{"$paid_amount", "$pending_amount"}},
				"pending_amount": 0,
				"payment_status": "PAID",
				"updated_at":     time.Now(),
			}}},
		}

		res, err := col.UpdateOne(ctx, bson.M{"_id": id}, pipeline)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to approve pending amount: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		var updated models.Payment
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to retrieve updated payment")
			return
		}

		utils.Respond(c, http.StatusAccepted, updated)
	}
}

// ---------------- DELETE ----------------
// Soft delete: the row is flagged and drops out of lists, search and stats.
func DeletePayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
			"$set": bson.M{"is_deleted": true, "updated_at": time.Now()},
		})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to delete payment: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusNoContent, "", gin.H{"id": id}))
	}
}
