package export

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

func TestBackupXML(t *testing.T) {
	backup := &models.Backup{
		Transactions: []models.Transaction{
			{ID: "t1", Description: "Groceries", Category: "food", Amount: decimal.RequireFromString("-42.50"), Date: calendar.MustParse("2025-03-04"), Icon: "cart"},
		},
		Incomes: []models.RecurringItem{
			{ID: "i1", Name: "Salary", Amount: decimal.NewFromInt(2200), Day: 27, Active: true, StartDate: calendar.MustParse("2025-01-01")},
		},
		Settings: models.Settings{
			BudgetEnabled: true,
			BudgetAmount:  decimal.NewFromInt(500),
			TrackingStart: calendar.MustParse("2025-01-01"),
		},
	}

	data, err := BackupXML(backup)
	if err != nil {
		t.Fatalf("BackupXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}

	if el := doc.FindElement("//transaction[@id='t1']/amount"); el == nil || el.Text() != "-42.5" {
		t.Errorf("transaction amount element missing or wrong: %v", el)
	}
	if el := doc.FindElement("//recurring_incomes/item/name"); el == nil || el.Text() != "Salary" {
		t.Errorf("recurring income name missing or wrong: %v", el)
	}
	if el := doc.FindElement("//settings/budget_amount"); el == nil || el.Text() != "500" {
		t.Errorf("settings budget amount missing or wrong: %v", el)
	}
	if !strings.Contains(string(data), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
}
