package models

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Transaction represents a posted ledger entry. Amount is signed: positive
// for inflows, negative for outflows. The sum of all transaction amounts is
// the source of truth for the current balance.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        calendar.Date   `json:"date"`
	Icon        string          `json:"icon"`
}
