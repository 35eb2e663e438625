package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Webhook signature schemes accepted by PAYMENT_WEBHOOK_SCHEME.
const (
	WebhookSchemeHMAC = "hmac"
	WebhookSchemeSvix = "svix"
	WebhookSchemeNone = "none"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string

	// Rate limiting. RedisURL is optional; an in-memory store is used when empty.
	RedisURL       string
	LoginRateLimit string

	// Payments
	PaymentWebhookScheme   string
	PaymentWebhookSecret   string
	PaymentRedirectBaseURL string

	// Bootstrap account created at startup when all three are set.
	SuperAdminName     string
	SuperAdminEmail    string
	SuperAdminPassword string

	PosthogAPIKey           string
	ApprovedSchoolsCacheTTL time.Duration
	// AccountStatusCacheTTL bounds how long a deactivated account keeps access.
	AccountStatusCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "school-fee-app")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("PAYMENT_WEBHOOK_SCHEME", WebhookSchemeHMAC)
	viper.SetDefault("PAYMENT_WEBHOOK_SECRET", "")
	viper.SetDefault("PAYMENT_REDIRECT_BASE_URL", "")
	viper.SetDefault("SUPER_ADMIN_NAME", "")
	viper.SetDefault("SUPER_ADMIN_EMAIL", "")
	viper.SetDefault("SUPER_ADMIN_PASSWORD", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("APPROVED_SCHOOLS_CACHE_TTL", "5m")
	viper.SetDefault("ACCOUNT_STATUS_CACHE_TTL", "1m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// e.g. "168h" for seven days
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "school-fee-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.PaymentWebhookScheme = strings.ToLower(viper.GetString("PAYMENT_WEBHOOK_SCHEME"))
	cfg.PaymentWebhookSecret = viper.GetString("PAYMENT_WEBHOOK_SECRET")
	cfg.PaymentRedirectBaseURL = strings.TrimRight(viper.GetString("PAYMENT_REDIRECT_BASE_URL"), "/")

	switch cfg.PaymentWebhookScheme {
	case WebhookSchemeHMAC, WebhookSchemeSvix:
		if cfg.PaymentWebhookSecret == "" {
			return nil, fmt.Errorf("PAYMENT_WEBHOOK_SECRET is required for webhook scheme %q", cfg.PaymentWebhookScheme)
		}
	case WebhookSchemeNone:
		if cfg.IsProduction {
			return nil, fmt.Errorf("webhook scheme %q is not allowed in production", WebhookSchemeNone)
		}
		log.Println("Warning: PAYMENT_WEBHOOK_SCHEME is none, payment webhooks are accepted unsigned.")
	default:
		return nil, fmt.Errorf("unknown PAYMENT_WEBHOOK_SCHEME %q", cfg.PaymentWebhookScheme)
	}

	cfg.SuperAdminName = viper.GetString("SUPER_ADMIN_NAME")
	cfg.SuperAdminEmail = viper.GetString("SUPER_ADMIN_EMAIL")
	cfg.SuperAdminPassword = viper.GetString("SUPER_ADMIN_PASSWORD")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cacheTTLStr := viper.GetString("APPROVED_SCHOOLS_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for APPROVED_SCHOOLS_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
	}
	cfg.ApprovedSchoolsCacheTTL = cacheTTL

	statusTTLStr := viper.GetString("ACCOUNT_STATUS_CACHE_TTL")
	statusTTL, err := time.ParseDuration(statusTTLStr)
	if err != nil || statusTTL <= 0 {
		statusTTL = time.Minute
		log.Printf("Warning: Invalid value for ACCOUNT_STATUS_CACHE_TTL ('%s'). Defaulting to %s.\n", statusTTLStr, statusTTL.String())
	}
	cfg.AccountStatusCacheTTL = statusTTL

	return cfg, nil
}

// HasSuperAdminBootstrap reports whether a bootstrap super admin is configured.
func (c *Config) HasSuperAdminBootstrap() bool {
	return c.SuperAdminName != "" && c.SuperAdminEmail != "" && c.SuperAdminPassword != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
