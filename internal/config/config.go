package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// Projection defaults. Per-user settings override the budget.
	DefaultBudget decimal.Decimal
	TrackingStart calendar.Date

	// Alerting
	AlertsEnabled bool
	AlertCron     string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=saldo sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		AlertsEnabled: getEnv("ALERTS_ENABLED", "false") == "true",
		AlertCron:     getEnv("ALERT_CRON", "0 7 * * *"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "alerts@saldo.local"),
	}

	budget, err := decimal.NewFromString(getEnv("DEFAULT_BUDGET", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_BUDGET: %w", err)
	}
	cfg.DefaultBudget = budget

	start, err := calendar.Parse(getEnv("TRACKING_START_DATE", "2025-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKING_START_DATE: %w", err)
	}
	cfg.TrackingStart = start

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
