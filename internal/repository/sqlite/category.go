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

// compile-time check that *CategoryStore implements repository.CategoryRepository
var _ repository.CategoryRepository = (*CategoryStore)(nil)

// CategoryStore reads and writes the categories table. Every query
// filters on user_id, so one user's categories are invisible to
// another user's requests.
type CategoryStore struct {
	conn *sql.DB
}

func (s *CategoryStore) ListByUser(ctx context.Context, userID int64) ([]model.Category, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, name, budget, icon, color FROM categories WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories for user %d: %w", userID, err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Budget, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating category rows: %w", err)
	}

	return categories, nil
}

// FindByID filters on both id and user_id, so a category belonging to
// another user reads as not found.
func (s *CategoryStore) FindByID(ctx context.Context, id, userID int64) (*model.Category, error) {
	var c model.Category

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, budget, icon, color FROM categories WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Budget, &c.Icon, &c.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("category", id)
		}
		return nil, fmt.Errorf("sqlite: finding category %d: %w", id, err)
	}

	return &c, nil
}

func (s *CategoryStore) Insert(ctx context.Context, category *model.Category) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO categories (user_id, name, budget, icon, color) VALUES (?, ?, ?, ?, ?)`,
		category.UserID, category.Name, category.Budget, category.Icon, category.Color,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting category: %w", err)
	}

	if category.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading generated category id: %w", err)
	}

	return nil
}

func (s *CategoryStore) Update(ctx context.Context, category *model.Category) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE categories SET name = ?, budget = ?, icon = ?, color = ? WHERE id = ? AND user_id = ?`,
		category.Name, category.Budget, category.Icon, category.Color, category.ID, category.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating category %d: %w", category.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("category", category.ID)
	}

	return nil
}

// Delete removes the category unless the user's transactions still
// reference it, in which case it returns ErrConflict. The check and
// the delete share one transaction, so a transaction inserted
// concurrently cannot slip between them and lose its category.
// Deleting a row that is absent or owned by another user affects zero
// rows and is not an error.
func (s *CategoryStore) Delete(ctx context.Context, id, userID int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ? AND user_id = ?`,
		id, userID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("sqlite: counting transactions for category %d: %w", id, err)
	}
	if count > 0 {
		return apperror.Conflict("category has transactions and cannot be deleted")
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`,
		id, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting category %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing category delete: %w", err)
	}

	return nil
}
