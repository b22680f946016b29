package models

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// RecurringItem is a user-defined rule producing one financial event per
// calendar month on a given day. Amount is always a positive magnitude; the
// sign is implied by whether the item is stored as an income or an expense.
type RecurringItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Icon      string          `json:"icon"`
	Active    bool            `json:"active"`
	Day       int             `json:"day"`
	StartDate calendar.Date   `json:"start_date"`
}
