// Package assistant extracts projection requests from free text: a target
// date and ad hoc signed amounts ("I'll spend 200 on travel on 15/05/2026").
// It is a plain pattern extractor feeding the projection engine; it performs
// no I/O and holds no state.
package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
)

// Extra is one ad hoc amount extracted from text, applied on top of the
// recurring schedule for a single simulation run.
type Extra struct {
	Amount decimal.Decimal
	Label  string
	Kind   string // "income" or "expense"
}

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`)
	isoDateRe     = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	amountRe      = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*(€|eur|euro|euros)?`)
)

var incomeWords = []string{"income", "earn", "receive", "bonus", "salary", "refund"}

// ParseDate extracts a target date from text. Supported shapes: "2026-05-15",
// "15/05/2026", and "15 may 2026" (year optional, defaulting to now's year).
// The second return value is false when no date is present.
func ParseDate(text string, now calendar.Date) (calendar.Date, bool) {
	lower := strings.ToLower(text)

	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		return buildDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}
	if m := numericDateRe.FindStringSubmatch(lower); m != nil {
		// day/month/year order
		return buildDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]))
	}

	for name, month := range monthNames {
		if !strings.Contains(lower, name) {
			continue
		}
		re := regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + name + `(?:\s+(\d{4}))?`)
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		year := now.Year()
		if m[2] != "" {
			year = atoi(m[2])
		}
		return buildDate(year, month, atoi(m[1]))
	}
	return calendar.Date{}, false
}

func buildDate(year int, month time.Month, day int) (calendar.Date, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return calendar.Date{}, false
	}
	return calendar.New(year, month, day), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseExtras extracts ad hoc amounts from text. Numbers that look like
// years are skipped unless explicitly marked as money, and numbers followed
// by a month name are treated as dates, not amounts. The surrounding words
// decide income vs expense (expense by default) and provide a short label.
func ParseExtras(text string, now calendar.Date) []Extra {
	lower := strings.ToLower(text)
	// Digits inside an explicit date are never amounts.
	lower = isoDateRe.ReplaceAllString(lower, " ")
	lower = numericDateRe.ReplaceAllString(lower, " ")
	var extras []Extra

	for _, m := range amountRe.FindAllStringSubmatchIndex(lower, -1) {
		valStr := strings.ReplaceAll(lower[m[2]:m[3]], ",", ".")
		amount, err := decimal.NewFromString(valStr)
		if err != nil {
			continue
		}

		explicitMoney := m[4] != -1
		tail := strings.TrimSpace(lower[m[1]:])

		if !explicitMoney && looksLikeYear(amount, now) {
			continue
		}
		if !explicitMoney && startsWithMonthName(tail) {
			continue
		}

		kind := "expense"
		ctxStart := m[0] - 25
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctxEnd := m[1] + 25
		if ctxEnd > len(lower) {
			ctxEnd = len(lower)
		}
		context := lower[ctxStart:ctxEnd]
		for _, w := range incomeWords {
			if strings.Contains(context, w) {
				kind = "income"
				break
			}
		}

		label := "simulation"
		if words := strings.FieldsFunc(tail, func(r rune) bool {
			return r == ' ' || r == ',' || r == '.'
		}); len(words) > 0 {
			n := len(words)
			if n > 3 {
				n = 3
			}
			label = strings.Join(words[:n], " ")
		}

		extras = append(extras, Extra{Amount: amount, Label: label, Kind: kind})
	}
	return extras
}

func looksLikeYear(amount decimal.Decimal, now calendar.Date) bool {
	if !amount.IsInteger() {
		return false
	}
	y := amount.IntPart()
	cur := int64(now.Year())
	return y >= cur-1 && y <= cur+1
}

func startsWithMonthName(tail string) bool {
	for name := range monthNames {
		if strings.HasPrefix(tail, name) {
			return true
		}
	}
	return false
}
