package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildTimelineSortedAndComplete(t *testing.T) {
	incomes := []m{item("Salary", "2200", 27, "2025-01-01")}
	expenses := []m{
		item("Rent", "650", 1, "2025-01-01"),
		item("Internet", "29.99", 5, "2025-01-01"),
	}
	events := BuildTimeline(incomes, expenses, dec("500"), d("2025-03-01"), d("2025-05-31"))

	// 3 months x (1 income + 2 expenses + 1 budget)
	if len(events) != 12 {
		t.Fatalf("got %d events, want 12", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("events out of order at %d: %s after %s", i, events[i].Date, events[i-1].Date)
		}
	}
}

func TestBuildTimelineBudgetOnFirstOfMonth(t *testing.T) {
	events := BuildTimeline(nil, nil, dec("500"), d("2025-03-15"), d("2025-06-15"))
	if len(events) != 3 { // Apr, May, Jun 1st; Mar 1st precedes the window
		t.Fatalf("got %d budget events, want 3", len(events))
	}
	for _, ev := range events {
		if ev.Kind != KindBudget {
			t.Errorf("event kind = %s, want budget", ev.Kind)
		}
		if ev.Date.Day() != 1 {
			t.Errorf("budget event on day %d, want 1", ev.Date.Day())
		}
		if ev.Source != BudgetSource {
			t.Errorf("budget event source = %q, want %q", ev.Source, BudgetSource)
		}
	}
}

func TestBuildTimelineZeroBudgetAddsNothing(t *testing.T) {
	if events := BuildTimeline(nil, nil, decimal.Zero, d("2025-01-01"), d("2025-12-31")); len(events) != 0 {
		t.Fatalf("zero budget produced %d events", len(events))
	}
}

func TestBuildTimelineDeterministicTieOrder(t *testing.T) {
	incomes := []m{item("Salary", "2200", 1, "2025-01-01")}
	expenses := []m{item("Rent", "650", 1, "2025-01-01")}

	first := BuildTimeline(incomes, expenses, dec("500"), d("2025-04-01"), d("2025-04-30"))
	second := BuildTimeline(incomes, expenses, dec("500"), d("2025-04-01"), d("2025-04-30"))

	if len(first) != 3 {
		t.Fatalf("got %d events, want 3", len(first))
	}
	// Same date for all three: insertion order is income, expense, budget.
	wantKinds := []Kind{KindIncome, KindExpense, KindBudget}
	for i, want := range wantKinds {
		if first[i].Kind != want {
			t.Errorf("event %d kind = %s, want %s", i, first[i].Kind, want)
		}
		if second[i].Kind != first[i].Kind || second[i].Source != first[i].Source {
			t.Errorf("tie order not reproducible at %d", i)
		}
	}
}
