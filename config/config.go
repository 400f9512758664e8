package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration, loaded once at startup and
// passed by reference into the components that need it.
type Config struct {
	Port        string
	Environment string // "development", "testing" or "production"
	CORSOrigins string

	// Document store
	MongoURI      string
	MongoDatabase string

	// Media store credentials
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Admin session
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	SessionTTL    time.Duration

	// Per-call timeouts. Media uploads carry large payloads and get a
	// longer budget than metadata writes.
	MetadataTimeout time.Duration
	UploadTimeout   time.Duration
}

// Load reads configuration from environment variables. It fails when a
// variable without a sensible default is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DB"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionTTL:    getDurationEnv("SESSION_TTL", 8*time.Hour),

		MetadataTimeout: getDurationEnv("METADATA_TIMEOUT", 10*time.Second),
		UploadTimeout:   getDurationEnv("UPLOAD_TIMEOUT", 90*time.Second),
	}

	required := map[string]string{
		"MONGODB_URI":           cfg.MongoURI,
		"MONGODB_DB":            cfg.MongoDatabase,
		"CLOUDINARY_CLOUD_NAME": cfg.CloudinaryCloudName,
		"CLOUDINARY_API_KEY":    cfg.CloudinaryAPIKey,
		"CLOUDINARY_API_SECRET": cfg.CloudinaryAPISecret,
		"JWT_SECRET":            cfg.JWTSecret,
		"ADMIN_USERNAME":        cfg.AdminUsername,
		"ADMIN_PASSWORD":        cfg.AdminPassword,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
