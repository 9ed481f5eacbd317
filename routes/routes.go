package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/isaacrobert33/outreach-logistics/config"
	controllers "github.com/isaacrobert33/outreach-logistics/controllers"
	middleware "github.com/isaacrobert33/outreach-logistics/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	v1 := r.Group("/api/v1")

	// auth
	v1.POST("/users/auth/register", controllers.Register(cfg))
	v1.POST("/users/auth/signin", controllers.Login(cfg))
	v1.POST("/users/auth/google", controllers.GoogleLogin(cfg))

	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/:id", controllers.GetUser(cfg))
		users.PATCH("/:id", controllers.UpdateUser(cfg))
		users.DELETE("/:id", controllers.DeleteUser(cfg))
	}

	// outreach — reads are public (landing + register pages), writes admin-only
	outreach := v1.Group("/outreach")
	{
		outreach.GET("", controllers.ListOutreach(cfg))
		outreach.GET("/latest", controllers.LatestOutreach(cfg))
		outreach.GET("/:id", controllers.GetOutreach(cfg))
		outreach.POST("", auth, controllers.CreateOutreach(cfg))
		outreach.PATCH("/:id", auth, controllers.UpdateOutreach(cfg))
		outreach.DELETE("/:id", auth, controllers.DeleteOutreach(cfg))
	}

	// banks — the register form lists public accounts
	banks := v1.Group("/banks")
	{
		banks.GET("", controllers.ListBanks(cfg))
		banks.POST("", auth, controllers.CreateBank(cfg))
		banks.PATCH("/:id", auth, controllers.UpdateBank(cfg))
		banks.DELETE("/:id", auth, controllers.DeleteBank(cfg))
	}

	// payments — registration, top-up search/increment and proof upload are
	// public; listing, edits and reports belong to the dashboard.
	// Payment ids ("KIT/001") contain a slash, so by-id operations carry the
	// id in an ?id= query parameter rather than a path segment.
	payments := v1.Group("/payments")
	{
		payments.POST("", controllers.CreatePayment(cfg))
		payments.GET("/search", controllers.SearchPayment(cfg))
		payments.PATCH("/topup", controllers.TopUpPayment(cfg))
		payments.POST("/proof", controllers.UploadPaymentProof(cfg))

		payments.GET("", auth, controllers.ListPayments(cfg))
		payments.GET("/stats", auth, controllers.PaymentStats(cfg))
		payments.GET("/excel", auth, controllers.ExportPayments(cfg))
		payments.GET("/detail", auth, controllers.GetPayment(cfg))
		payments.PATCH("/update", auth, controllers.UpdatePayment(cfg))
		payments.POST("/approve", auth, controllers.ApprovePendingPayment(cfg))
		payments.DELETE("", auth, controllers.DeletePayment(cfg))
	}

	// registration wizard drafts
	drafts := v1.Group("/drafts")
	{
		drafts.PUT("/:token", controllers.SaveDraft(cfg))
		drafts.GET("/:token", controllers.GetDraft(cfg))
		drafts.DELETE("/:token", controllers.DeleteDraft(cfg))
	}
}
