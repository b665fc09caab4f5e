package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config is the API server configuration.
type Config struct {
	Port          string
	AppEnv        string
	StorageDriver string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	JWTExpire     time.Duration
	FrontendURL   string
	LogLevel      string
	AuthRateLimit int

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	expireHours, err := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	if err != nil || expireHours <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRE_HOURS must be a positive integer")
	}

	rateLimit, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "20"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be a non-negative integer")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageMongo),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "trackback"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpire:     time.Duration(expireHours) * time.Hour,
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AuthRateLimit: rateLimit,

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "trackback"),
	}

	switch cfg.StorageDriver {
	case StorageMongo, StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageMemory, cfg.StorageDriver)
	}

	if cfg.IsProduction() && cfg.JWTSecret == "secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CloudinaryEnabled reports whether photo uploads can be offloaded.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
