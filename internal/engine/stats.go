package engine

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// Status classifies the availability margin.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// warningThreshold is the margin at or below which the status degrades from
// ok to warning.
var warningThreshold = decimal.NewFromInt(100)

// LedgerBalance sums all transaction amounts. This is the raw balance, the
// only source of truth for "money actually in the account".
func LedgerBalance(transactions []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// transactionsOn filters transactions posted on the given day.
func transactionsOn(transactions []models.Transaction, day calendar.Date) []models.Transaction {
	var out []models.Transaction
	for _, tx := range transactions {
		if tx.Date.Equal(day) {
			out = append(out, tx)
		}
	}
	return out
}

// EffectiveBalance is the ledger balance adjusted for recurring items due
// today that have not posted yet: incomes due today with no same-day
// transaction of the exact amount are added, expenses due today with no
// same-day transaction of the absolute amount are subtracted. The result is
// rounded to two decimals because it is a display value, never an engine
// input: feeding it into Project would double-count today's events.
func EffectiveBalance(transactions []models.Transaction, incomes, expenses []models.RecurringItem, today calendar.Date) decimal.Decimal {
	balance := LedgerBalance(transactions)
	postedToday := transactionsOn(transactions, today)

	for _, item := range incomes {
		if !dueToday(item, today) {
			continue
		}
		if !hasAmount(postedToday, item.Amount, false) {
			balance = balance.Add(item.Amount)
		}
	}
	for _, item := range expenses {
		if !dueToday(item, today) {
			continue
		}
		if !hasAmount(postedToday, item.Amount, true) {
			balance = balance.Sub(item.Amount)
		}
	}
	return balance.Round(2)
}

func dueToday(item models.RecurringItem, today calendar.Date) bool {
	if !item.Active || item.Day != today.Day() {
		return false
	}
	return item.StartDate.IsZero() || !today.Before(item.StartDate)
}

func hasAmount(transactions []models.Transaction, amount decimal.Decimal, absolute bool) bool {
	for _, tx := range transactions {
		if absolute {
			if tx.Amount.Abs().Equal(amount.Abs()) {
				return true
			}
		} else if tx.Amount.Equal(amount) {
			return true
		}
	}
	return false
}

// RemainingFixedExpenses sums the active recurring expenses still due in the
// current month (day on or after today's), excluding those due today that
// already posted; today's unposted ones are covered by the effective-balance
// adjustment and must not be counted twice here against it.
func RemainingFixedExpenses(expenses []models.RecurringItem, transactions []models.Transaction, today calendar.Date) decimal.Decimal {
	postedToday := transactionsOn(transactions, today)
	sum := decimal.Zero
	for _, item := range expenses {
		if !item.Active || item.Day < today.Day() {
			continue
		}
		if item.Day == today.Day() && hasAmount(postedToday, item.Amount, true) {
			continue
		}
		sum = sum.Add(item.Amount)
	}
	return sum
}

// Availability computes the conservative spendable amount: the effective
// balance minus the fixed expenses left this month minus the monthly budget.
// The margin may be negative; availability is clamped at zero. Status is
// critical below zero, warning at or below 100, ok otherwise.
func Availability(effectiveBalance, remainingFixed, budget decimal.Decimal) (availability, margin decimal.Decimal, status Status) {
	margin = effectiveBalance.Sub(remainingFixed).Sub(budget).Round(2)
	availability = margin
	if availability.IsNegative() {
		availability = decimal.Zero
	}
	switch {
	case margin.IsNegative():
		status = StatusCritical
	case margin.LessThanOrEqual(warningThreshold):
		status = StatusWarning
	default:
		status = StatusOK
	}
	return availability, margin, status
}

// MonthlyActualExpenses sums the absolute value of this month's negative
// transactions.
func MonthlyActualExpenses(transactions []models.Transaction, today calendar.Date) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		if tx.Date.SameMonth(today) && tx.Amount.IsNegative() {
			sum = sum.Add(tx.Amount.Abs())
		}
	}
	return sum.Round(2)
}
