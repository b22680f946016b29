package models

import "github.com/saldoapp/saldo-service/internal/calendar"

// ProjectionPoint is a balance checkpoint surfaced to consumers. All amounts
// are rounded to two decimal places at this boundary.
type ProjectionPoint struct {
	Label        string        `json:"label"`
	Date         calendar.Date `json:"date"`
	Balance      float64       `json:"balance"`
	Income       float64       `json:"income"`
	Expenses     float64       `json:"expenses"`
	CostOfLiving float64       `json:"cost_of_living"`
	Net          float64       `json:"net"`
}

// FinancialStats is the read-only statistics payload built on top of the
// projection engine.
type FinancialStats struct {
	TotalBalance       float64 `json:"total_balance"`
	MonthlyExpenses    float64 `json:"monthly_expenses"`
	Availability       float64 `json:"availability"`
	AvailabilityMargin float64 `json:"availability_margin"`
	FinancialStatus    string  `json:"financial_status"`
	BudgetUsed         float64 `json:"budget_used"`
	Currency           string  `json:"currency"`
	Timestamp          string  `json:"timestamp"`
}

// MissedOccurrence is a recurring occurrence with no matching recorded
// transaction, as reported by the reconciler.
type MissedOccurrence struct {
	Date   calendar.Date `json:"date"`
	Name   string        `json:"name"`
	Amount float64       `json:"amount"`
	Kind   string        `json:"kind"` // "income" or "expense"
}

// ReconciliationReport summarizes missing recurring occurrences and the
// correction delta to apply to the starting balance.
type ReconciliationReport struct {
	Missing []MissedOccurrence `json:"missing"`
	Delta   float64            `json:"delta"`
}

// SimulationResult is the outcome of an ad hoc free-text projection request.
type SimulationResult struct {
	TargetDate       calendar.Date     `json:"target_date"`
	ProjectedBalance float64           `json:"projected_balance"`
	Extras           []SimulationExtra `json:"extras"`
}

// SimulationExtra is one ad hoc amount extracted from free text and applied
// on top of the recurring schedule.
type SimulationExtra struct {
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
	Kind   string  `json:"kind"` // "income" or "expense"
}

// Backup is a full export of one user's data.
type Backup struct {
	Transactions []Transaction   `json:"transactions"`
	Incomes      []RecurringItem `json:"recurring_incomes"`
	Expenses     []RecurringItem `json:"recurring_expenses"`
	Settings     Settings        `json:"settings"`
}
