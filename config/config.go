package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TokenModeStateful = "stateful" // token row in admin_tokens, revocable
	TokenModeJWT      = "jwt"      // signed stateless token
)

// Config is a one-shot snapshot of the environment taken at startup.
// godotenv runs before Load, so .env values are visible here.
type Config struct {
	Env  string
	Port string

	// Storage. DBDriver selects the gorm driver; the same service runs
	// against sqlite (default), mysql, or postgres.
	DBDriver    string
	DBPath      string // sqlite file
	DatabaseURL string // postgres DSN, wins when set
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	AllowedOrigins []string

	AdminUsername     string
	AdminPasswordHash string
	AdminTokenMode    string
	AdminTokenTTL     time.Duration
	JWTSecret         string

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalMode         string // sandbox | live
	PayPalWebhookID    string

	ClientURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func Load() *Config {
	ttl := 86400
	if v := os.Getenv("ADMIN_TOKEN_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}

	origins := []string{"http://localhost:3000", "https://localhost:3000"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("SQLITE_DB_PATH", "./data/store.sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),

		AllowedOrigins: origins,

		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenMode:    getEnv("ADMIN_TOKEN_MODE", TokenModeStateful),
		AdminTokenTTL:     time.Duration(ttl) * time.Second,
		JWTSecret:         os.Getenv("JWT_SECRET"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),

		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalMode:         getEnv("PAYPAL_MODE", "sandbox"),
		PayPalWebhookID:    os.Getenv("PAYPAL_WEBHOOK_ID"),

		ClientURL: os.Getenv("CLIENT_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@example.com"),
	}
}

// Validate enforces the production secret checklist. Development runs are
// allowed to start without gateway credentials.
func (c *Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	type requiredVar struct {
		name  string
		value string
	}
	required := []requiredVar{
		{"STRIPE_SECRET_KEY", c.StripeSecretKey},
		{"STRIPE_PUBLIC_KEY", c.StripePublishableKey},
		{"PAYPAL_CLIENT_ID", c.PayPalClientID},
		{"PAYPAL_CLIENT_SECRET", c.PayPalClientSecret},
		{"PAYPAL_WEBHOOK_ID", c.PayPalWebhookID},
		{"CLIENT_URL", c.ClientURL},
		{"ADMIN_USERNAME", c.AdminUsername},
		{"ADMIN_PASSWORD_HASH", c.AdminPasswordHash},
	}
	if c.AdminTokenMode == TokenModeJWT {
		required = append(required, requiredVar{"JWT_SECRET", c.JWTSecret})
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
