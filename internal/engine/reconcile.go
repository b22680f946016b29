package engine

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// MissedOccurrence is a recurring occurrence that should have posted but has
// no matching transaction.
type MissedOccurrence struct {
	Date   calendar.Date
	Name   string
	Amount decimal.Decimal
	Kind   Kind
}

// Reconciliation is the result of comparing the historical recurring
// schedule against the recorded ledger. Delta is the signed correction to
// add once to the starting balance: money that logically should already be
// in the account.
type Reconciliation struct {
	Delta   decimal.Decimal
	Missing []MissedOccurrence
}

// Reconcile detects recurring occurrences in [periodStart, today) with no
// matching transaction. An occurrence counts as missing when it falls
// strictly before today, on or after the item's start date, strictly after
// the earliest recorded transaction (history predating tracking is not
// flagged), and no transaction in the same calendar month matches the item's
// amount: exact match for incomes, absolute-value match for expenses.
//
// Matching by amount and calendar month rather than exact date is
// deliberate: real posting dates drift a few days from the configured day of
// month. The cost is a false negative when an unrelated transaction happens
// to carry the same amount in the same month; that trade-off is accepted.
//
// Reconcile never writes; materializing missing occurrences as transactions
// is a separate, explicit operation owned by the caller.
func Reconcile(transactions []models.Transaction, incomes, expenses []models.RecurringItem, periodStart, today calendar.Date) Reconciliation {
	rec := Reconciliation{Delta: decimal.Zero}
	if len(transactions) == 0 {
		return rec
	}

	earliest := transactions[0].Date
	for _, tx := range transactions[1:] {
		if tx.Date.Before(earliest) {
			earliest = tx.Date
		}
	}

	windowEnd := today.AddDays(-1) // strictly before today
	check := func(items []models.RecurringItem, kind Kind) {
		for _, item := range items {
			for _, occ := range Expand(item, kind, periodStart, windowEnd) {
				if !occ.Date.After(earliest) {
					continue
				}
				if matchedInMonth(transactions, occ) {
					continue
				}
				rec.Missing = append(rec.Missing, MissedOccurrence{
					Date:   occ.Date,
					Name:   item.Name,
					Amount: item.Amount,
					Kind:   kind,
				})
				if kind == KindIncome {
					rec.Delta = rec.Delta.Add(item.Amount)
				} else {
					rec.Delta = rec.Delta.Sub(item.Amount)
				}
			}
		}
	}
	check(incomes, KindIncome)
	check(expenses, KindExpense)
	return rec
}

// matchedInMonth reports whether any transaction in the occurrence's
// calendar month matches its amount.
func matchedInMonth(transactions []models.Transaction, occ Event) bool {
	for _, tx := range transactions {
		if !tx.Date.SameMonth(occ.Date) {
			continue
		}
		switch occ.Kind {
		case KindIncome:
			if tx.Amount.Equal(occ.Amount) {
				return true
			}
		default:
			if tx.Amount.Abs().Equal(occ.Amount.Abs()) {
				return true
			}
		}
	}
	return false
}
