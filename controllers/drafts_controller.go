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

type draftInput struct {
	Step       int     `json:"step"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Gender     string  `json:"gender"`
	Crew       string  `json:"crew"`
	Unit       string  `json:"unit"`
	Level      string  `json:"level"`
	Amount     float64 `json:"amount"`
	BankID     string  `json:"bankId"`
	OutreachID string  `json:"outreachId"`
}

// ---------------- UPSERT ----------------
// The registration wizard saves its state here keyed by a client-generated
// token, so a visitor can resume after a reload. Cleared on submit.
func SaveDraft(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		var input draftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Gender != "" && !genders[input.Gender] {
			utils.RespondMessage(c, http.StatusBadRequest, "gender must be one of UNSPECIFIED, MALE, FEMALE")
			return
		}

		draft := models.Draft{
			Token:     token,
			Step:      input.Step,
			Name:      input.Name,
			Phone:     input.Phone,
			Email:     input.Email,
			Gender:    input.Gender,
			Crew:      input.Crew,
			Unit:      input.Unit,
			Level:     input.Level,
			Amount:    input.Amount,
			UpdatedAt: time.Now(),
		}
		if input.BankID != "" {
			oid, err := primitive.ObjectIDFromHex(input.BankID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid bank id")
				return
			}
			draft.BankID = oid
		}
		if input.OutreachID != "" {
			oid, err := primitive.ObjectIDFromHex(input.OutreachID)
			if err != nil {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
				return
			}
			draft.OutreachID = oid
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("drafts")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.Replace().SetUpsert(true)
		if _, err := col.ReplaceOne(ctx, bson.M{"_id": token}, draft, opts); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not save draft: "+err.Error())
			return
		}

		utils.Respond(c, http.StatusAccepted, draft)
	}
}

// ---------------- GET ----------------
func GetDraft(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var draft models.Draft
		err := cfg.MongoClient.Database(cfg.DBName).
			Collection("drafts").
			FindOne(ctx, bson.M{"_id": token}).
			Decode(&draft)
		if err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		utils.Respond(c, http.StatusOK, draft)
	}
}

// ---------------- DELETE ----------------
func DeleteDraft(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("drafts")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": token})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to delete draft: "+err.Error())
			return
		}
		if res.DeletedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusNoContent, "", gin.H{"token": token}))
	}
}
