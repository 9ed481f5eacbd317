package controllers

import (
	"context"
	"log"
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

func parseDate(value string) (*time.Time, bool) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
		for _, layout := range layouts {
			if t, e := time.Parse(layout, value); e == nil {
				return &t, true
			}
		}
		return nil, false
	}
	return &parsed, true
}

// ---------------- CREATE ----------------
func CreateOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Theme       string  `form:"theme" binding:"required"`
			Description string  `form:"description"`
			Location    string  `form:"location"`
			Date        *string `form:"date"`
			Fee         float64 `form:"fee"`
		}
		if err := c.ShouldBind(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		var date *time.Time
		if input.Date != nil && *input.Date != "" {
			parsed, ok := parseDate(*input.Date)
			if !ok {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid date format, use RFC3339 or YYYY-MM-DD")
				return
			}
			date = parsed
		}

		// --- Optional flyer upload ---
		var flyerURL string
		if fileHeader, err := c.FormFile("flyer"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "failed to open flyer")
				return
			}
			flyerURL, err = utils.UploadFlyerToCloudinary(file)
			file.Close()
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, err.Error())
				return
			}
		}

		now := time.Now()
		outreach := models.Outreach{
			ID:          primitive.NewObjectID(),
			Theme:       input.Theme,
			Description: input.Description,
			Location:    input.Location,
			Date:        date,
			Fee:         input.Fee,
			Flyer:       flyerURL,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("outreach")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, outreach); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not create outreach: "+err.Error())
			return
		}

		utils.Respond(c, http.StatusCreated, outreach)
	}
}

// ---------------- LIST ----------------
func ListOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("outreach")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not fetch outreach records: "+err.Error())
			return
		}

		var records []models.Outreach
		if err := cursor.All(ctx, &records); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not decode outreach records: "+err.Error())
			return
		}

		if len(records) == 0 {
			utils.Respond(c, http.StatusOK, []models.Outreach{})
			return
		}

		latest := records[0]
		for _, o := range records {
			if o.UpdatedAt.After(latest.UpdatedAt) {
				latest = o
			}
		}
		etag := utils.GenerateETag(latest.ID.Hex(), latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		utils.Respond(c, http.StatusOK, records)
	}
}

// ---------------- LATEST ----------------
// The public landing page shows the most recent outreach.
func LatestOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("outreach")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var outreach models.Outreach
		opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
		if err := col.FindOne(ctx, bson.M{}, opts).Decode(&outreach); err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		utils.Respond(c, http.StatusOK, outreach)
	}
}

// ---------------- GET ----------------
func GetOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid outreach id")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var outreach models.Outreach
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("outreach").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&outreach)
		if err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		etag := utils.GenerateETag(outreach.ID.Hex(), outreach.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		utils.Respond(c, http.StatusOK, outreach)
	}
}

// ---------------- UPDATE ----------------
func UpdateOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		var input struct {
			Theme       string  `form:"theme"`
			Description string  `form:"description"`
			Location    string  `form:"location"`
			Date        *string `form:"date"`
			Fee         float64 `form:"fee"`
			IsActive    *bool   `form:"isActive"`
		}
		if err := c.ShouldBind(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Theme != "" {
			update["theme"] = input.Theme
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.Fee > 0 {
			update["fee"] = input.Fee
		}
		if input.IsActive != nil {
			update["is_active"] = *input.IsActive
		}
		if input.Date != nil && *input.Date != "" {
			parsed, ok := parseDate(*input.Date)
			if !ok {
				utils.RespondMessage(c, http.StatusBadRequest, "invalid date format, use RFC3339 or YYYY-MM-DD")
				return
			}
			update["date"] = *parsed
		}

		// --- Optional replacement flyer ---
		if fileHeader, err := c.FormFile("flyer"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "failed to open flyer")
				return
			}
			flyerURL, err := utils.UploadFlyerToCloudinary(file)
			file.Close()
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, err.Error())
				return
			}
			update["flyer"] = flyerURL
		}

		if len(update) == 1 {
			utils.RespondMessage(c, http.StatusBadRequest, "no fields to update")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("outreach")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not update outreach: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		var updated models.Outreach
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to retrieve updated outreach")
			return
		}

		utils.Respond(c, http.StatusAccepted, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteOutreach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "Invalid ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("outreach")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Outreach
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to delete outreach: "+err.Error())
			return
		}
		if res.DeletedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		if existing.Flyer != "" {
			if err := utils.DeleteFromCloudinary(existing.Flyer); err != nil {
				log.Printf("could not delete flyer for outreach %s: %v", oid.Hex(), err)
			}
		}

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusNoContent, "", gin.H{"id": oid.Hex()}))
	}
}
