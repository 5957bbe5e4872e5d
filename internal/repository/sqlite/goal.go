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

// compile-time check that *GoalStore implements repository.GoalRepository
var _ repository.GoalRepository = (*GoalStore)(nil)

// GoalStore reads and writes the goals table, owner-scoped like
// CategoryStore.
type GoalStore struct {
	conn *sql.DB
}

func (s *GoalStore) ListByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, name, target_amount, monthly_contribution, target_date
		 FROM goals WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing goals for user %d: %w", userID, err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount,
			&g.MonthlyContribution, &g.TargetDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating goal rows: %w", err)
	}

	return goals, nil
}

func (s *GoalStore) FindByID(ctx context.Context, id, userID int64) (*model.Goal, error) {
	var g model.Goal

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, target_amount, monthly_contribution, target_date
		 FROM goals WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.MonthlyContribution, &g.TargetDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("goal", id)
		}
		return nil, fmt.Errorf("sqlite: finding goal %d: %w", id, err)
	}

	return &g, nil
}

func (s *GoalStore) Insert(ctx context.Context, goal *model.Goal) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO goals (user_id, name, target_amount, monthly_contribution, target_date)
		 VALUES (?, ?, ?, ?, ?)`,
		goal.UserID, goal.Name, goal.TargetAmount, goal.MonthlyContribution, goal.TargetDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting goal: %w", err)
	}

	if goal.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading generated goal id: %w", err)
	}

	return nil
}

func (s *GoalStore) Update(ctx context.Context, goal *model.Goal) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE goals SET name = ?, target_amount = ?, monthly_contribution = ?, target_date = ?
		 WHERE id = ? AND user_id = ?`,
		goal.Name, goal.TargetAmount, goal.MonthlyContribution, goal.TargetDate,
		goal.ID, goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating goal %d: %w", goal.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("goal", goal.ID)
	}

	return nil
}

// Delete removes the goal and clears goal_id on the user's transactions
// that referenced it, in one transaction. The transactions keep their
// amount and category; they just stop counting towards a goal that no
// longer exists.
func (s *GoalStore) Delete(ctx context.Context, id, userID int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET goal_id = NULL WHERE goal_id = ? AND user_id = ?`,
		id, userID,
	); err != nil {
		return fmt.Errorf("sqlite: detaching transactions from goal %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`,
		id, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting goal %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing goal deletion: %w", err)
	}

	return nil
}
