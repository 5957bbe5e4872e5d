package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/repository"
)

// compile-time check that *TransactionStore implements repository.TransactionRepository
var _ repository.TransactionRepository = (*TransactionStore)(nil)

// TransactionStore reads and writes the transactions table. Reads join
// the category row so listings carry the category name and icon without
// a second query.
type TransactionStore struct {
	conn *sql.DB
}

// Columns are aliased explicitly (t_id, c_name, ...) because drivers
// report result-set labels, not qualified names like "t.id"; scanning
// by qualified name silently breaks on most of them.
const transactionColumns = `
	t.id AS t_id, t.user_id AS t_user_id, t.category_id AS t_category_id,
	t.goal_id AS t_goal_id, t.type AS t_type, t.amount AS t_amount,
	t.description AS t_description, t.transaction_date AS t_transaction_date,
	c.name AS c_name, c.icon AS c_icon`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var (
		t      model.Transaction
		goalID sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &goalID, &t.Type, &t.Amount,
		&t.Description, &t.TransactionDate, &t.Category, &t.Icon)
	if err != nil {
		return nil, err
	}
	if goalID.Valid {
		t.GoalID = &goalID.Int64
	}
	return &t, nil
}

// ListByUser returns the user's transactions, newest first. The join is
// an inner join: a transaction whose category was removed does not
// appear here.
func (s *TransactionStore) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT`+transactionColumns+`
		 FROM transactions t
		 JOIN categories c ON t.category_id = c.id
		 WHERE t.user_id = ?
		 ORDER BY t.transaction_date DESC, t.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning transaction row: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating transaction rows: %w", err)
	}

	return transactions, nil
}

func (s *TransactionStore) FindByID(ctx context.Context, id, userID int64) (*model.Transaction, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT`+transactionColumns+`
		 FROM transactions t
		 JOIN categories c ON t.category_id = c.id
		 WHERE t.id = ? AND t.user_id = ?`,
		id, userID,
	)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("transaction", id)
		}
		return nil, fmt.Errorf("sqlite: finding transaction %d: %w", id, err)
	}

	return t, nil
}

// SumGoalIncome sums the amounts of income-type transactions that
// reference the goal. COALESCE turns the no-rows NULL into 0.
func (s *TransactionStore) SumGoalIncome(ctx context.Context, goalID, userID int64) (float64, error) {
	var sum float64

	err := s.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE goal_id = ? AND user_id = ? AND type = 'income'`,
		goalID, userID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing goal %d income: %w", goalID, err)
	}

	return sum, nil
}

func (s *TransactionStore) Insert(ctx context.Context, transaction *model.Transaction) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO transactions (user_id, category_id, goal_id, type, amount, description, transaction_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		transaction.UserID, transaction.CategoryID, transaction.GoalID,
		transaction.Type, transaction.Amount, transaction.Description, transaction.TransactionDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting transaction: %w", err)
	}

	if transaction.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading generated transaction id: %w", err)
	}

	return nil
}

func (s *TransactionStore) Update(ctx context.Context, transaction *model.Transaction) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE transactions
		 SET category_id = ?, goal_id = ?, type = ?, amount = ?, description = ?, transaction_date = ?
		 WHERE id = ? AND user_id = ?`,
		transaction.CategoryID, transaction.GoalID, transaction.Type, transaction.Amount,
		transaction.Description, transaction.TransactionDate,
		transaction.ID, transaction.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating transaction %d: %w", transaction.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("transaction", transaction.ID)
	}

	return nil
}

// Delete is idempotent, like CategoryStore.Delete.
func (s *TransactionStore) Delete(ctx context.Context, id, userID int64) error {
	_, err := s.conn.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting transaction %d: %w", id, err)
	}

	return nil
}
