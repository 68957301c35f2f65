package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	JWTSecret         string
	AccessTokenMaxAge int

	// RedisURL is optional. When empty, notifications are written inline
	// instead of going through the stream workers.
	RedisURL            string
	NotificationWorkers int

	LogLevel string
	AppEnv   string

	MaxAvatarBytes int
}

// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "trackmygoal"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "trackmygoal"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenMaxAge: getEnvPositiveInt("ACCESS_TOKEN_MAX_AGE", 900),

		RedisURL:            os.Getenv("REDIS_URL"),
		NotificationWorkers: getEnvPositiveInt("NOTIFICATION_WORKERS", 2),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		AppEnv:   os.Getenv("APP_ENV"),

		MaxAvatarBytes: getEnvPositiveInt("MAX_AVATAR_BYTES", 2*1024*1024),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvPositiveInt falls back to defaultValue for unset, malformed or non-positive values.
func getEnvPositiveInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
