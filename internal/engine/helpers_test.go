package engine

import (
	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

type m = models.RecurringItem

// d is a compact date literal for test fixtures.
func d(s string) calendar.Date { return calendar.MustParse(s) }

func tx(amount, date string) models.Transaction {
	return models.Transaction{
		Amount: dec(amount),
		Date:   calendar.MustParse(date),
	}
}
