package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	config "github.com/isaacrobert33/outreach-logistics/config"
	models "github.com/isaacrobert33/outreach-logistics/models"
	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

const tokenTTL = 24 * time.Hour

// ---------------- REGISTER ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if len(input.Password) < 6 {
			utils.RespondMessage(c, http.StatusBadRequest, "password length should be more than 6 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not hash password")
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Password:  string(hash),
			CreatedAt: now,
			UpdatedAt: now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.RespondMessage(c, http.StatusBadRequest, "email already registered")
				return
			}
			utils.RespondMessage(c, http.StatusInternalServerError, "could not create user: "+err.Error())
			return
		}

		utils.Respond(c, http.StatusCreated, user)
	}
}

// ---------------- SIGNIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid inputs")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
			utils.RespondMessage(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			utils.RespondMessage(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Email, cfg.JWTSecret, tokenTTL)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not issue token")
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// ---------------- GOOGLE SIGNIN ----------------
// The Google ID token must belong to an already-registered admin; a valid
// token alone does not grant access.
func GoogleLogin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		email, err := utils.VerifyGoogleIDToken(input.IDToken, cfg.GoogleClientID)
		if err != nil {
			utils.RespondMessage(c, http.StatusUnauthorized, err.Error())
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			utils.RespondMessage(c, http.StatusUnauthorized, "no admin account for this google user")
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Email, cfg.JWTSecret, tokenTTL)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not issue token")
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// ---------------- GET ----------------
func GetUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid user id")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&user)
		if err != nil {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		utils.Respond(c, http.StatusOK, user)
	}
}

// ---------------- UPDATE ----------------
func UpdateUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid user id")
			return
		}

		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Email != "" {
			update["email"] = input.Email
		}
		if input.Password != "" {
			if len(input.Password) < 6 {
				utils.RespondMessage(c, http.StatusBadRequest, "password length should be more than 6 characters")
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "could not hash password")
				return
			}
			update["password"] = string(hash)
		}

		if len(update) == 1 {
			utils.RespondMessage(c, http.StatusBadRequest, "no fields to update")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not update user: "+err.Error())
			return
		}
		if res.MatchedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		utils.Respond(c, http.StatusAccepted, gin.H{"id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondMessage(c, http.StatusBadRequest, "invalid user id")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "failed to delete user: "+err.Error())
			return
		}
		if res.DeletedCount == 0 {
			utils.Respond(c, http.StatusNotFound, nil)
			return
		}

		c.JSON(http.StatusOK, utils.NewEnvelope(http.StatusNoContent, "", gin.H{"id": oid.Hex()}))
	}
}
