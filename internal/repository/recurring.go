package repository

import (
	"fmt"
	"time"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// recurring items live in two tables with identical shapes; the kind picks
// the table. Kind values come from the service layer, never from user input.
func recurringTable(kind string) string {
	if kind == "income" {
		return "finance.recurring_incomes"
	}
	return "finance.recurring_expenses"
}

// ListRecurring returns all recurring items of one kind for a user, ordered
// by day of month.
func (r *Repository) ListRecurring(userID int64, kind string) ([]models.RecurringItem, error) {
	query := fmt.Sprintf(`
		SELECT id, name, amount, icon, active, day, start_date
		FROM %s
		WHERE user_id = $1
		ORDER BY day, id`, recurringTable(kind))
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring %ss: %w", kind, err)
	}
	defer rows.Close()

	var items []models.RecurringItem
	for rows.Next() {
		var item models.RecurringItem
		var start time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.Amount, &item.Icon, &item.Active, &item.Day, &start); err != nil {
			return nil, fmt.Errorf("failed to scan recurring %s: %w", kind, err)
		}
		item.StartDate = calendar.FromTime(start)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring %ss: %w", kind, err)
	}
	return items, nil
}

// CreateRecurring inserts a new recurring item owned by the user
func (r *Repository) CreateRecurring(userID int64, kind string, item *models.RecurringItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, amount, icon, active, day, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, recurringTable(kind))
	_, err := r.db.Exec(query, item.ID, userID, item.Name, item.Amount, item.Icon, item.Active, item.Day, item.StartDate.String())
	if err != nil {
		return fmt.Errorf("failed to create recurring %s: %w", kind, err)
	}
	return nil
}

// UpdateRecurring updates a recurring item owned by the user
func (r *Repository) UpdateRecurring(userID int64, kind string, item *models.RecurringItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, amount = $2, icon = $3, active = $4, day = $5, start_date = $6
		WHERE id = $7 AND user_id = $8`, recurringTable(kind))
	res, err := r.db.Exec(query, item.Name, item.Amount, item.Icon, item.Active, item.Day, item.StartDate.String(), item.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update recurring %s: %w", kind, err)
	}
	return checkAffected(res, "recurring item")
}

// DeleteRecurring removes a recurring item owned by the user
func (r *Repository) DeleteRecurring(userID int64, kind string, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, recurringTable(kind))
	res, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring %s: %w", kind, err)
	}
	return checkAffected(res, "recurring item")
}
