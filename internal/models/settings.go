package models

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Settings holds per-user configuration for the projection engine.
type Settings struct {
	BudgetEnabled bool            `json:"budget_enabled"`
	BudgetAmount  decimal.Decimal `json:"budget_amount"`
	TrackingStart calendar.Date   `json:"tracking_start"`
}

// EffectiveBudget returns the monthly cost-of-living budget to feed into the
// timeline builder: the configured amount when enabled, zero otherwise.
func (s Settings) EffectiveBudget() decimal.Decimal {
	if !s.BudgetEnabled {
		return decimal.Zero
	}
	return s.BudgetAmount
}
