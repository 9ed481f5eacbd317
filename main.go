package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	config "github.com/isaacrobert33/outreach-logistics/config"
	middleware "github.com/isaacrobert33/outreach-logistics/middleware"
	routes "github.com/isaacrobert33/outreach-logistics/routes"
	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

func main() {
	cfg := config.Load()

	if err := config.EnsureIndexes(cfg); err != nil {
		log.Fatal("could not create indexes:", err)
	}

	utils.RegisterMetrics()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders: []string{"ETag", "Last-Modified", "Content-Disposition"},
	}))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupRoutes(r, cfg)

	log.Println("listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
