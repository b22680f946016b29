package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// BudgetSource is the source name attached to synthesized budget events.
const BudgetSource = "Cost of living"

// BuildTimeline merges the expanded occurrences of all active income and
// expense items with, when budget is positive, one synthetic budget event on
// the 1st of each month in the window. The result is sorted by date
// ascending; events on the same date keep insertion order (incomes, then
// expenses, then budget) so repeated runs are reproducible.
func BuildTimeline(incomes, expenses []models.RecurringItem, budget decimal.Decimal, windowStart, windowEnd calendar.Date) []Event {
	var events []Event
	for _, item := range incomes {
		events = append(events, Expand(item, KindIncome, windowStart, windowEnd)...)
	}
	for _, item := range expenses {
		events = append(events, Expand(item, KindExpense, windowStart, windowEnd)...)
	}

	if budget.IsPositive() && !windowEnd.Before(windowStart) {
		months := calendar.MonthsBetween(windowStart, windowEnd)
		year, month := windowStart.Year(), windowStart.Month()
		for i := 0; i <= months; i++ {
			occ := calendar.Occurrence(year, month, 1)
			if !occ.Before(windowStart) && !occ.After(windowEnd) {
				events = append(events, Event{
					Date:   occ,
					Amount: budget,
					Kind:   KindBudget,
					Source: BudgetSource,
				})
			}
			year, month = calendar.NextMonth(year, month)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
