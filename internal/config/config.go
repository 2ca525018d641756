package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort            string // Application port
	AWSRegion          string // AWS region for DynamoDB
	AWSAccessKeyID     string // AWS access key (empty: default credential chain)
	AWSSecretAccessKey string // AWS secret key
	TableName          string // DynamoDB table name
	JWTSecret          string // JWT secret key
	RedisAddr          string // Redis server address
	RedisPass          string // Redis password
	RedisDB            int    // Redis database number
	AdminEmail         string // Bootstrap admin email (local store mode only)
	IsProd             bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:            envOr("APP_PORT", "5000"),
		AWSRegion:          envOr("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		TableName:          envOr("DYNAMODB_TABLE_NAME", "StockerData"),
		JWTSecret:          envOr("JWT_SECRET", "dev-secret-key-change-in-prod"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPass:          os.Getenv("REDIS_PASS"),
		RedisDB:            redisDB,
		AdminEmail:         envOr("ADMIN_EMAIL", "admin@stocker.com"),
		IsProd:             os.Getenv("IS_PROD") == "true",
	}
}

// envOr returns the environment variable value, or fallback if unset
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
