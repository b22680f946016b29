package engine

import (
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Checkpoint is a balance snapshot at one requested date. Balance is the
// cumulative running balance after consuming every event up to and including
// the checkpoint date; the period totals cover the events consumed since the
// previous checkpoint (or since the window start for the first one). Values
// are kept at full precision here and rounded only when surfaced to
// consumers.
type Checkpoint struct {
	Date         calendar.Date
	Label        string
	Balance      decimal.Decimal
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	CostOfLiving decimal.Decimal
	Net          decimal.Decimal
	Events       []Event
}

// Project walks the sorted timeline forward from startingBalance, emitting
// one checkpoint per requested date. checkpoints must be strictly
// increasing. An event is consumed by the first checkpoint whose date is on
// or after the event's date, so an event dated "today" lands in the first
// checkpoint; the starting balance itself must be the ledger-only balance,
// never pre-adjusted for today's unposted recurring items.
//
// An empty checkpoint list yields an empty result. An empty timeline yields
// one checkpoint per date, each repeating the starting balance.
func Project(startingBalance decimal.Decimal, timeline []Event, checkpoints []calendar.Date) []Checkpoint {
	out := make([]Checkpoint, 0, len(checkpoints))
	balance := startingBalance
	cursor := 0

	for _, date := range checkpoints {
		income := decimal.Zero
		expenses := decimal.Zero
		costOfLiving := decimal.Zero
		var consumed []Event

		for cursor < len(timeline) && !timeline[cursor].Date.After(date) {
			ev := timeline[cursor]
			switch ev.Kind {
			case KindIncome:
				balance = balance.Add(ev.Amount)
				income = income.Add(ev.Amount)
			case KindExpense:
				balance = balance.Sub(ev.Amount)
				expenses = expenses.Add(ev.Amount)
			case KindBudget:
				balance = balance.Sub(ev.Amount)
				costOfLiving = costOfLiving.Add(ev.Amount)
			}
			consumed = append(consumed, ev)
			cursor++
		}

		out = append(out, Checkpoint{
			Date:         date,
			Label:        date.Label(),
			Balance:      balance,
			Income:       income,
			Expenses:     expenses,
			CostOfLiving: costOfLiving,
			Net:          income.Sub(expenses).Sub(costOfLiving),
			Events:       consumed,
		})
	}
	return out
}

// monthsWindow is how far ahead timelines and checkpoint sequences reach.
// One month beyond a year covers checkpoint days that fall just past the
// twelfth month.
const monthsWindow = 13

// MonthlyCheckpoints returns up to limit strictly increasing checkpoint
// dates on targetDay (clamped per month), starting with this month's
// occurrence when it is still on or after now and skipping it otherwise.
func MonthlyCheckpoints(now calendar.Date, targetDay, limit int) []calendar.Date {
	var dates []calendar.Date
	year, month := now.Year(), now.Month()
	for i := 0; i <= monthsWindow && len(dates) < limit; i++ {
		occ := calendar.Occurrence(year, month, targetDay)
		if !occ.Before(now) {
			dates = append(dates, occ)
		}
		year, month = calendar.NextMonth(year, month)
	}
	return dates
}

// ProjectionWindow returns the default [now, now+13 months] event window
// used for monthly checkpoint runs.
func ProjectionWindow(now calendar.Date) (calendar.Date, calendar.Date) {
	return now, now.AddMonths(monthsWindow)
}
