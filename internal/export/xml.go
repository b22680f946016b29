// Package export renders a user's full data backup as XML.
package export

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/saldoapp/saldo-service/internal/models"
)

// BackupXML renders a backup as an indented XML document.
func BackupXML(backup *models.Backup) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("backup")

	transactions := root.CreateElement("transactions")
	for _, tx := range backup.Transactions {
		el := transactions.CreateElement("transaction")
		el.CreateAttr("id", tx.ID)
		el.CreateElement("description").SetText(tx.Description)
		el.CreateElement("category").SetText(tx.Category)
		el.CreateElement("amount").SetText(tx.Amount.String())
		el.CreateElement("date").SetText(tx.Date.String())
		if tx.Icon != "" {
			el.CreateElement("icon").SetText(tx.Icon)
		}
	}

	writeRecurring(root.CreateElement("recurring_incomes"), backup.Incomes)
	writeRecurring(root.CreateElement("recurring_expenses"), backup.Expenses)

	settings := root.CreateElement("settings")
	settings.CreateElement("budget_enabled").SetText(fmt.Sprintf("%t", backup.Settings.BudgetEnabled))
	settings.CreateElement("budget_amount").SetText(backup.Settings.BudgetAmount.String())
	settings.CreateElement("tracking_start").SetText(backup.Settings.TrackingStart.String())

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render backup XML: %w", err)
	}
	return data, nil
}

func writeRecurring(parent *etree.Element, items []models.RecurringItem) {
	for _, item := range items {
		el := parent.CreateElement("item")
		el.CreateAttr("id", item.ID)
		el.CreateElement("name").SetText(item.Name)
		el.CreateElement("amount").SetText(item.Amount.String())
		el.CreateElement("day").SetText(fmt.Sprintf("%d", item.Day))
		el.CreateElement("active").SetText(fmt.Sprintf("%t", item.Active))
		el.CreateElement("start_date").SetText(item.StartDate.String())
		if item.Icon != "" {
			el.CreateElement("icon").SetText(item.Icon)
		}
	}
}
