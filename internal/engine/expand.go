package engine

import (
	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// Expand produces the ordered occurrence dates of a recurring item within
// [windowStart, windowEnd], both bounds inclusive. Inactive items expand to
// nothing. The day of month is clamped to each month's length, so day 31
// lands on Feb 28/29 instead of rolling into March. No occurrence is ever
// produced before the item's start date.
//
// The iteration is bounded by an explicit month count rather than a
// date-difference loop, so arbitrarily long windows cannot mis-step across
// month-length boundaries.
func Expand(item models.RecurringItem, kind Kind, windowStart, windowEnd calendar.Date) []Event {
	if !item.Active {
		return nil
	}
	if windowEnd.Before(windowStart) {
		return nil
	}

	start := item.StartDate
	if start.IsZero() {
		start = farPast
	}
	lower := calendar.Later(windowStart, start)

	var events []Event
	months := calendar.MonthsBetween(windowStart, windowEnd)
	year, month := windowStart.Year(), windowStart.Month()
	for i := 0; i <= months; i++ {
		occ := calendar.Occurrence(year, month, item.Day)
		if !occ.Before(lower) && !occ.After(windowEnd) {
			events = append(events, Event{
				Date:   occ,
				Amount: item.Amount,
				Kind:   kind,
				Source: item.Name,
			})
		}
		year, month = calendar.NextMonth(year, month)
	}
	return events
}
