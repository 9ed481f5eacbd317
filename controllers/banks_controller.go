package controllers

import (
	"context"
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

type bankInput struct {
	Name       string `json:"name"`
	Bank       string `json:"bank"`
	AcctNo     string `json:"acctNo"`
	OutreachID string `json:"outreachId"`
	IsPublic   *bool  `json:"isPublic"`
}

// ---------------- CREATE ----------------
func CreateBank(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input bankInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Name == "" || input.Bank == "" || input.AcctNo == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "name, bank and acctNo are required")
			return
		}

		var outreachID primitive.ObjectID
		if input.OutreachID != "" {
			oid, err := primitive.ObjectIDFromHex(input.OutreachID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
				return
			}
			outreachID = oid
		}

		now := time.Now()
		bank := models.Bank{
			ID:         primitive.NewObjectID(),
			Name:       input.Name,
			Bank:       input.Bank,
			AcctNo:     input.AcctNo,
			OutreachID: outreachID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if input.IsPublic != nil {
			bank.IsPublic = *input.IsPublic
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("banks")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, bank); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not create bank account: "+err.Error())
			return
		}

		utils.Respond(c, http.StatusCreated, bank)
	}
}

// ---------------- LIST ----------------
// The public registration form passes isPublic=true and only sees accounts
// flagged for it.
func ListBanks(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("banks")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if c.Query("isPublic") == "true" {
			filter["is_public"] = true
		}
		if outreach := c.Query("outreach"); outreach != "" && outreach != "*" {
			if oid, err := primitive.ObjectIDFromHex(outreach); err == nil {
				filter["outreach_id"] = oid
			}
		}

		cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: -1}}))
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not fetch bank accounts: "+err.Error())
			return
		}

		var banks []models.Bank
		if err := cursor.All(ctx, &banks); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not decode bank accounts: "+err.Error())
			return
		}
		if banks == nil {
			banks = []models.Bank{}
		}

		utils.Respond(c, http.StatusOK, banks)
	}
}

// ---------------- UPDATE ----------------
func UpdateBank(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		var input bankInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Bank != "" {
			update["bank"] = input.Bank
		}
		if input.AcctNo != "" {
			update["acct_no"] = input.AcctNo
		}
		if input.IsPublic != nil {
			update["is_public"] = *input.IsPublic
		}
		if input.OutreachID != "" {
			outreachID, err := primitive.ObjectIDFromHex(input.OutreachID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
				return
			}
			update["outreach_id"] = outreachID
		}

		if len(update) == 1 {
			utils.RespondMessage(c, http.StatusBadRequest, "no fields to update")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("banks")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not update bank account: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		var updated models.Bank
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to retrieve updated bank account")
			return
		}

		utils.Respond(c, http.StatusCreated, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteBank(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("banks")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to delete bank account: "+err.Error())
			return
		}
		if res.DeletedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusNoContent, "", gin.H{"id": oid.Hex()}))
	}
}
