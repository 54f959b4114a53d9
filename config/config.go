package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // BUSINESS_TIMEZONE must resolve in slim containers

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Email drivers understood by pkg/email.
const (
	EmailDriverSendGrid = "sendgrid"
	EmailDriverSMTP     = "smtp"
	EmailDriverLog      = "log"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Email delivery
	EmailDriver      string        `env:"EMAIL_DRIVER" envDefault:"sendgrid"`
	SendGridAPIKey   string        `env:"SENDGRID_API_KEY"`
	SendGridEndpoint string        `env:"SENDGRID_ENDPOINT" envDefault:"https://api.sendgrid.com"`
	EmailHTTPTimeout time.Duration `env:"EMAIL_HTTP_TIMEOUT" envDefault:"15s"`
	FromEmail        string        `env:"FROM_EMAIL" envDefault:"noreply@colchester-plumber.co.uk"`
	BusinessEmail    string        `env:"BUSINESS_EMAIL" envDefault:"bookings@colchester-plumber.co.uk"`
	// SMTP fallback driver
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.sendgrid.net"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// Branding used in both emails
	BusinessName     string `env:"BUSINESS_NAME" envDefault:"Colchester Plumbing & Heating Co."`
	BusinessPhone    string `env:"BUSINESS_PHONE" envDefault:"01279 249046"`
	BusinessWhatsApp string `env:"BUSINESS_WHATSAPP" envDefault:"+441206123456"` // E.164
	WebsiteName      string `env:"WEBSITE_NAME" envDefault:"Colchester Plumber Website"`
	BusinessTimezone string `env:"BUSINESS_TIMEZONE" envDefault:"Europe/London"`

	// HTTP edge
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MetricsEnabled     bool     `env:"METRICS_ENABLED" envDefault:"true"`
	SwaggerEnabled     bool     `env:"SWAGGER_ENABLED" envDefault:"true"`

	// Redis/Upstash Configuration
	UpstashRedisURL      string `env:"UPSTASH_REDIS_URL"`
	UpstashRedisPassword string `env:"UPSTASH_REDIS_PASSWORD"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitQuoteThreshold int `env:"RATE_LIMIT_QUOTE_THRESHOLD" envDefault:"5"` // 0 disables

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`
}

func LoadConfig() (*Config, error) {
	// .env.local takes precedence over .env; real environment variables win over both.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.EmailDriver = strings.ToLower(strings.TrimSpace(cfg.EmailDriver))
	cfg.SendGridEndpoint = strings.TrimRight(cfg.SendGridEndpoint, "/")

	switch cfg.EmailDriver {
	case EmailDriverSendGrid, EmailDriverSMTP, EmailDriverLog:
	default:
		return nil, fmt.Errorf("unknown EMAIL_DRIVER %q", cfg.EmailDriver)
	}

	if _, err := time.LoadLocation(cfg.BusinessTimezone); err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", cfg.BusinessTimezone, err)
	}

	if cfg.EmailDriver == EmailDriverSendGrid && cfg.SendGridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is missing. Quote requests will be rejected until it is set.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// RateLimitWindow returns the rate limit window as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// Location returns the business time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsSet reports whether key was provided by the environment or a .env file
// rather than filled from a default. Call after LoadConfig.
func IsSet(key string) bool {
	v, ok := os.LookupEnv(key)
	return ok && v != ""
}
