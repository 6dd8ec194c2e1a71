package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the scheduler API
type Config struct {
	Port     string `validate:"required,numeric"`
	GinMode  string `validate:"omitempty,oneof=debug release test"`
	Env      string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`

	// DatabaseURL selects Postgres; when empty a SQLite file at DataPath is used
	DatabaseURL string
	DataPath    string `validate:"required_without=DatabaseURL"`

	JWTSecret       string        `validate:"required"`
	APIMasterSecret string        `validate:"required"`
	AdminUsername   string        `validate:"required"`
	AdminPassword   string        `validate:"required"`
	TokenTTL        time.Duration `validate:"gt=0"`
	BcryptCost      int           `validate:"min=4,max=31"`

	DefaultRateLimit int `validate:"gt=0"`
}

var validate = validator.New()

// envPaths are tried in order; the first existing .env file is loaded
var envPaths = []string{".env", "../.env", "../../.env"}

// Load reads a .env file if present, then the process environment
func Load() (*Config, error) {
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", p, err)
			}
			break
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}
	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "14"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("DEFAULT_RATE_LIMIT", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		GinMode:          os.Getenv("GIN_MODE"),
		Env:              getEnv("APP_ENV", "prod"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataPath:         getEnv("DATA_PATH", "scheduler.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		APIMasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		TokenTTL:         time.Duration(ttlHours) * time.Hour,
		BcryptCost:       bcryptCost,
		DefaultRateLimit: rateLimit,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs struct validation over the config
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
