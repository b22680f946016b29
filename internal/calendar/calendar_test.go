package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestClampDay(t *testing.T) {
	tests := []struct {
		day   int
		year  int
		month time.Month
		want  int
	}{
		{31, 2024, time.February, 29}, // leap year
		{31, 2023, time.February, 28},
		{30, 2025, time.February, 28},
		{31, 2025, time.April, 30},
		{15, 2025, time.February, 15},
		{1, 2025, time.January, 1},
		{31, 2025, time.December, 31},
	}
	for _, tt := range tests {
		if got := ClampDay(tt.day, tt.year, tt.month); got != tt.want {
			t.Errorf("ClampDay(%d, %d, %s) = %d, want %d", tt.day, tt.year, tt.month, got, tt.want)
		}
	}
}

func TestOccurrenceNeverRollsOver(t *testing.T) {
	occ := Occurrence(2025, time.February, 31)
	if occ.Month() != time.February {
		t.Fatalf("Occurrence(2025, Feb, 31) landed in %s, want February", occ.Month())
	}
	if occ.Day() != 28 {
		t.Fatalf("Occurrence(2025, Feb, 31).Day() = %d, want 28", occ.Day())
	}
}

func TestNextOnOrAfter(t *testing.T) {
	tests := []struct {
		day  int
		from string
		want string
	}{
		{5, "2025-03-15", "2025-04-05"},  // already past this month
		{25, "2025-03-15", "2025-03-25"}, // still ahead this month
		{15, "2025-03-15", "2025-03-15"}, // same day counts
		{5, "2025-12-20", "2026-01-05"},  // year rollover
		{31, "2025-02-10", "2025-02-28"}, // clamped candidate
		{31, "2024-02-10", "2024-02-29"}, // clamped candidate, leap year
	}
	for _, tt := range tests {
		got := NextOnOrAfter(tt.day, MustParse(tt.from))
		if got.String() != tt.want {
			t.Errorf("NextOnOrAfter(%d, %s) = %s, want %s", tt.day, tt.from, got, tt.want)
		}
	}
}

func TestNextOnOrAfterNeverBeforeFrom(t *testing.T) {
	from := MustParse("2025-01-01")
	for i := 0; i < 500; i++ {
		for day := 1; day <= 31; day++ {
			got := NextOnOrAfter(day, from)
			if got.Before(from) {
				t.Fatalf("NextOnOrAfter(%d, %s) = %s is before from", day, from, got)
			}
		}
		from = from.AddDays(1)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2025-03-15", "2025-03-31", 0},
		{"2025-03-15", "2025-04-01", 1},
		{"2025-01-01", "2026-02-01", 13},
		{"2025-12-31", "2026-01-01", 1},
		{"2025-04-01", "2025-03-31", -1},
	}
	for _, tt := range tests {
		if got := MonthsBetween(MustParse(tt.a), MustParse(tt.b)); got != tt.want {
			t.Errorf("MonthsBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDateComparisons(t *testing.T) {
	a := New(2025, time.July, 31)
	b := New(2025, time.July, 31)
	if a != b {
		t.Error("identical dates are not comparable with ==")
	}
	if a.Before(b) || a.After(b) {
		t.Error("identical dates compare as ordered")
	}
	if !a.Equal(b) {
		t.Error("Equal returned false for identical dates")
	}
	if !a.AddDays(1).After(a) {
		t.Error("AddDays(1) is not after the original date")
	}
}

func TestFromTimeNormalizesIntraday(t *testing.T) {
	late := time.Date(2025, time.March, 15, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, time.March, 15, 0, 0, 1, 0, time.UTC)
	if FromTime(late) != FromTime(early) {
		t.Error("FromTime did not normalize time of day")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2025-02-28")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-02-28"` {
		t.Fatalf("marshal = %s, want %q", data, "2025-02-28")
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip changed date: %s", back)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse accepted garbage input")
	}
}
