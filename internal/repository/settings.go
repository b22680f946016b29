package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// GetSettings returns the user's projection settings, or ErrNotFound when
// none were ever saved; the service substitutes configured defaults.
func (r *Repository) GetSettings(userID int64) (*models.Settings, error) {
	s := &models.Settings{}
	var start time.Time
	query := `
		SELECT budget_enabled, budget_amount, tracking_start
		FROM finance.settings
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&s.BudgetEnabled, &s.BudgetAmount, &start)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	s.TrackingStart = calendar.FromTime(start)
	return s, nil
}

// SaveSettings creates or replaces the user's projection settings.
func (r *Repository) SaveSettings(userID int64, s *models.Settings) error {
	query := `
		INSERT INTO finance.settings (user_id, budget_enabled, budget_amount, tracking_start)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET budget_enabled = $2, budget_amount = $3, tracking_start = $4`
	if _, err := r.db.Exec(query, userID, s.BudgetEnabled, s.BudgetAmount, s.TrackingStart.String()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
