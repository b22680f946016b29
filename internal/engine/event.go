// Package engine computes forward-looking balance projections from an
// initial balance, recurring monthly items and a flat cost-of-living budget.
// Every function is a pure computation over immutable snapshots: no I/O, no
// ambient clock, no ambient configuration. Callers resolve "now" and the
// budget once and pass them in.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Kind classifies a financial event.
type Kind int

const (
	KindIncome Kind = iota
	KindExpense
	KindBudget
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	case KindBudget:
		return "budget"
	}
	return "unknown"
}

// Event is a single dated cash flow derived from a recurring item or the
// monthly budget. Amount is an unsigned magnitude; the sign to apply comes
// from Kind. Events only live for the duration of one projection run.
type Event struct {
	Date   calendar.Date
	Amount decimal.Decimal
	Kind   Kind
	Source string
}

// farPast is substituted for a missing start date so that items without one
// are considered always active rather than rejected.
var farPast = calendar.MustParse("2000-01-01")
