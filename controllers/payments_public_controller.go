package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/isaacrobert33/outreach-logistics/config"
	models "github.com/isaacrobert33/outreach-logistics/models"
	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

// searchResult enriches a payment with display labels for the top-up flow.
type searchResult struct {
	models.Payment
	Outreach string `json:"outreach,omitempty"`
	Bank     string `json:"bank,omitempty"`
}

// ---------------- SEARCH ----------------
// Lets a visitor locate their prior registration by email or phone within one
// outreach, without authentication. Returns the most recent match.
func SearchPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		outreach := c.Query("outreach")
		if query == "" || query == "*" || outreach == "" || outreach == "*" {
			utils.RespondMessage(c, http.StatusBadRequest, "Both query and outreach ID query params have to be specified.")
			return
		}

		oid, err := primitive.ObjectIDFromHex(outreach)
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
			return
		}

		filter := bson.M{
			"is_deleted":  bson.M{"$ne": true},
			"outreach_id": oid,
			"$or": []bson.M{
				{"email": query},
				{"phone": query},
			},
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var payment models.Payment
		opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
		if err := db.Collection("payments").FindOne(ctx, filter, opts).Decode(&payment); err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		result := searchResult{Payment: payment}
		if !payment.OutreachID.IsZero() {
			var o models.Outreach
			if err := db.Collection("outreach").FindOne(ctx, bson.M{"_id": payment.OutreachID}).Decode(&o); err == nil {
				result.Outreach = o.Theme
			}
		}
		if !payment.BankID.IsZero() {
			var b models.Bank
			if err := db.Collection("banks").FindOne(ctx, bson.M{"_id": payment.BankID}).Decode(&b); err == nil {
				result.Bank = fmt.Sprintf("%s - %s", b.Name, b.Bank)
			}
		}

		utils.Respond(c, http.StatusOK, result)
	}
}

// ---------------- TOP-UP ----------------
/// Public pendingAmount increment for the top-up flow: a visitor who found
// their registration via search adds an amount that then awaits admin
// approval. Identity fields are not editable here.
func TopUpPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		var input struct {
			PendingAmount *float64 `json:"pendingAmount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.PendingAmount == nil || *input.PendingAmount <= 0 {
			utils.RespondMessage(c, http.StatusBadRequest, "pendingAmount must be greater than 0")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, bson.M{
			"$inc": bson.M{"pending_amount": *input.PendingAmount},
			"$set": bson.M{"payment_status": "PENDING", "updated_at": time.Now()},
		})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to record top-up: "+err.Error())
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

// ---------------- PROOF UPLOAD ----------------
// Multipart "file" field; the uploaded asset URL is appended to the payment's
// proof image list. Provider errors surface verbatim.
func UploadPaymentProof(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "No file uploaded")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to open file")
			return
		}
		defer file.Close()

		url, err := utils.UploadProofToCloudinary(file)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, err.Error())
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
			"$push": bson.M{"proof_image": url},
			"$set":  bson.M{"updated_at": time.Now()},
		})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to attach proof: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		utils.ProofUploads.Inc()

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusOK, "File uploaded", gin.H{"url": url}))
	}
}
