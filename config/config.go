package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config carries the shared clients and settings every controller needs.
type Config struct {
	MongoClient    *mongo.Client
	DBName         string
	Port           string
	JWTSecret      string
	GoogleClientID string
}

// Load reads .env (if present), connects to MongoDB and returns the app config.
// Fatal on a broken database connection — nothing works without it.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	uri := getEnv("MONGO_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("could not connect to mongodb:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("could not reach mongodb:", err)
	}

	cfg := &Config{
		MongoClient:    client,
		DBName:         getEnv("DB_NAME", "outreach"),
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	log.Println("connected to database:", cfg.DBName)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
