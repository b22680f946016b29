package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
)

// ListTransactions returns all transactions for a user, newest first.
func (r *Repository) ListTransactions(userID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, description, category, amount, date, icon
		FROM finance.transactions
		WHERE user_id = $1
		ORDER BY date DESC, id`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var date time.Time
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Category, &tx.Amount, &date, &tx.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Date = calendar.FromTime(date)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction inserts a new transaction owned by the user
func (r *Repository) CreateTransaction(userID int64, tx *models.Transaction) error {
	query := `
		INSERT INTO finance.transactions (id, user_id, description, category, amount, date, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, tx.ID, userID, tx.Description, tx.Category, tx.Amount, tx.Date.String(), tx.Icon)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransaction updates a transaction owned by the user
func (r *Repository) UpdateTransaction(userID int64, tx *models.Transaction) error {
	query := `
		UPDATE finance.transactions
		SET description = $1, category = $2, amount = $3, date = $4, icon = $5
		WHERE id = $6 AND user_id = $7`
	res, err := r.db.Exec(query, tx.Description, tx.Category, tx.Amount, tx.Date.String(), tx.Icon, tx.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return checkAffected(res, "transaction")
}

// DeleteTransaction removes a transaction owned by the user
func (r *Repository) DeleteTransaction(userID int64, id string) error {
	res, err := r.db.Exec(`DELETE FROM finance.transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return checkAffected(res, "transaction")
}

func checkAffected(res sql.Result, kind string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", kind, ErrNotFound)
	}
	return nil
}
