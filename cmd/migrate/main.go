// Command migrate creates the database schema. It is idempotent: every
// statement uses IF NOT EXISTS and can be re-run safely.
package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/saldoapp/saldo-service/internal/config"
)

var statements = []string{
	`CREATE SCHEMA IF NOT EXISTS finance`,

	`CREATE TABLE IF NOT EXISTS finance.users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS finance.transactions (
		id          UUID PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES finance.users(id) ON DELETE CASCADE,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		amount      NUMERIC(14,2) NOT NULL,
		date        DATE NOT NULL,
		icon        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_date_idx
		ON finance.transactions (user_id, date DESC)`,

	`CREATE TABLE IF NOT EXISTS finance.recurring_incomes (
		id         UUID PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES finance.users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		amount     NUMERIC(14,2) NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		active     BOOLEAN NOT NULL DEFAULT TRUE,
		day        INT NOT NULL CHECK (day BETWEEN 1 AND 31),
		start_date DATE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS finance.recurring_expenses (
		id         UUID PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES finance.users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		amount     NUMERIC(14,2) NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		active     BOOLEAN NOT NULL DEFAULT TRUE,
		day        INT NOT NULL CHECK (day BETWEEN 1 AND 31),
		start_date DATE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS finance.settings (
		user_id        BIGINT PRIMARY KEY REFERENCES finance.users(id) ON DELETE CASCADE,
		budget_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		budget_amount  NUMERIC(14,2) NOT NULL DEFAULT 0,
		tracking_start DATE NOT NULL
	)`,
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logger.Fatalf("Statement %d failed: %v", i+1, err)
		}
	}
	logger.Infof("Schema up to date: %d statements applied", len(statements))
}
