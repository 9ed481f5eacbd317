package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/isaacrobert33/outreach-logistics/config"
	models "github.com/isaacrobert33/outreach-logistics/models"
	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

// ---------------- STATS ----------------
// Aggregates counts and paid-amount sums by status, scoped to the same filter
// predicate as the payment list.
func PaymentStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := buildPaymentFilter(
			c.DefaultQuery("q", "*"),
			"*",
			c.DefaultQuery("outreach", "*"),
			"*",
			"*",
		)

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: filter}},
			{{Key: "$group", Value: bson.M{
				"_id":    "$payment_status",
				"count":  bson.M{"$sum": 1},
				"amount": bson.M{"$sum": "$paid_amount"},
			}}},
		}

		cursor, err := col.Aggregate(ctx, pipeline)
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not aggregate payments: "+err.Error())
			return
		}

		var groups []struct {
			Status string  `bson:"_id"`
			Count  int64   `bson:"count"`
			Amount float64 `bson:"amount"`
		}
		if err := cursor.All(ctx, &groups); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not decode stats: "+err.Error())
			return
		}

		var stats models.PaymentStats
		for _, g := range groups {
			stats.TotalPaidAmount += g.Amount
			switch g.Status {
			case "PAID":
				stats.TotalPaid = g.Count
				stats.CompletedPaidAmount = g.Amount
			case "PENDING":
				stats.TotalPending = g.Count
				stats.PendingPaidAmount = g.Amount
			}
		}

		utils.Respond(c, http.StatusOK, stats)
	}
}

var paymentExportHeaders = []interface{}{
	"id", "name", "email", "phone", "crew", "paymentStatus", "paidAmount", "createdAt",
}

func paymentExportRow(p models.Payment) []interface{} {
	return []interface{}{
		p.ID, p.Name, p.Email, p.Phone, p.Crew, p.PaymentStatus, p.PaidAmount,
		p.CreatedAt.Format(time.RFC3339),
	}
}

// ---------------- EXCEL EXPORT ----------------
func ExportPayments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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
			utils.RespondMessage(c, http.StatusNotFound, "No records found")
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Records"
		f.SetSheetName("Sheet1", sheet)

		if err := f.SetSheetRow(sheet, "A1", &paymentExportHeaders); err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not build spreadsheet")
			return
		}
		for i, p := range payments {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			row := paymentExportRow(p)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				utils.RespondMessage(c, http.StatusInternalServerError, "could not build spreadsheet")
				return
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			utils.RespondMessage(c, http.StatusInternalServerError, "could not write spreadsheet")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=payments.xlsx")
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			buf.Bytes())
	}
}
