package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string

	CORSOrigins []string

	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	AlertRecipients []string

	BudgetAlertSchedule string
	BudgetCheckOnStart  bool
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory, when present, seeds variables that are not set.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	checkOnStart, err := strconv.ParseBool(getEnv("BUDGET_CHECK_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid BUDGET_CHECK_ON_START: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBConn:              getEnv("DB_CONN", "host=localhost port=5432 user=salon password=salon dbname=salon sslmode=disable"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            ttl,
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "password"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "budget@salon.local"),
		AlertRecipients:     splitList(getEnv("ALERT_RECIPIENTS", "")),
		BudgetAlertSchedule: getEnv("BUDGET_ALERT_SCHEDULE", "0 8 * * *"),
		BudgetCheckOnStart:  checkOnStart,
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

// AlertsEnabled reports whether budget alert e-mails can be delivered.
func (c *Config) AlertsEnabled() bool {
	return c.SMTPHost != "" && len(c.AlertRecipients) > 0
}

// CORSAllowCredentials reports whether browsers may send credentials
// cross-origin. A wildcard origin list never allows them.
func (c *Config) CORSAllowCredentials() bool {
	if len(c.CORSOrigins) == 0 {
		return false
	}
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return false
		}
	}
	return true
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
