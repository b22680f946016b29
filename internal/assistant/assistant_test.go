package assistant

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

var now = calendar.MustParse("2025-03-15")

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"project my balance to 2026-05-15", "2026-05-15"},
		{"what about 15/05/2026?", "2026-05-15"},
		{"15 may 2026 please", "2026-05-15"},
		{"15th of may 2026", "2026-05-15"},
		{"on 20 august", "2025-08-20"}, // year defaults to now's
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.text, now)
		if !ok {
			t.Errorf("ParseDate(%q) found no date", tt.text)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestParseDateAbsent(t *testing.T) {
	if _, ok := ParseDate("add an expense of 500", now); ok {
		t.Error("ParseDate found a date in text without one")
	}
}

func TestParseExtras(t *testing.T) {
	extras := ParseExtras("I'll spend 200€ for travel", now)
	if len(extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(extras))
	}
	if !extras[0].Amount.Equal(decimalFrom(t, "200")) {
		t.Errorf("amount = %s, want 200", extras[0].Amount)
	}
	if extras[0].Kind != "expense" {
		t.Errorf("kind = %s, want expense", extras[0].Kind)
	}
}

func TestParseExtrasIncomeContext(t *testing.T) {
	extras := ParseExtras("I receive a bonus of 350 euro", now)
	if len(extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(extras))
	}
	if extras[0].Kind != "income" {
		t.Errorf("kind = %s, want income", extras[0].Kind)
	}
}

func TestParseExtrasSkipsYearsAndDates(t *testing.T) {
	if extras := ParseExtras("project to 15 august 2025", now); len(extras) != 0 {
		t.Fatalf("date text produced %d extras, want 0", len(extras))
	}
	if extras := ParseExtras("what happens in 2026", now); len(extras) != 0 {
		t.Fatalf("year text produced %d extras, want 0", len(extras))
	}
	if extras := ParseExtras("spend 250 on 2025-06-15", now); len(extras) != 1 {
		t.Fatalf("iso date text produced %d extras, want 1", len(extras))
	}
	// An explicit money marker overrides the year heuristic.
	if extras := ParseExtras("a purchase of 2025€", now); len(extras) != 1 {
		t.Fatalf("explicit money amount produced %d extras, want 1", len(extras))
	}
}

func TestParseExtrasDecimalComma(t *testing.T) {
	extras := ParseExtras("spend 29,99 for internet", now)
	if len(extras) != 1 {
		t.Fatalf("got %d extras, want 1", len(extras))
	}
	if extras[0].Amount.String() != "29.99" {
		t.Errorf("amount = %s, want 29.99", extras[0].Amount)
	}
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}
