// Package repository declares the storage interfaces consumed by the
// service layer. All reads and writes on user-owned entities take the
// owner's user id and filter on it; rows belonging to other users are
// invisible to every operation.
package repository

import (
	"context"

	"github.com/tahmid/fintrack/internal/model"
)

type UserRepository interface {
	// FindByEmail returns the user with the given email, or an error
	// wrapping apperror.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts the user and the given seed categories in a single
	// transaction: either the account exists with its defaults, or
	// nothing was written. The generated ids are set on user and on each
	// category. A duplicate email surfaces apperror.ErrConflict.
	Create(ctx context.Context, user *model.User, seed []*model.Category) error
}

type CategoryRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Category, error)
	FindByID(ctx context.Context, id, userID int64) (*model.Category, error)
	Insert(ctx context.Context, category *model.Category) error
	// Update writes name, budget, icon and color. Updating a row that
	// does not exist or belongs to another user returns ErrNotFound.
	Update(ctx context.Context, category *model.Category) error
	// Delete removes the category, or returns ErrConflict while any of
	// the user's transactions still reference it; the check and the
	// delete are atomic. Deleting an absent or foreign row is a no-op.
	Delete(ctx context.Context, id, userID int64) error
}

type GoalRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Goal, error)
	FindByID(ctx context.Context, id, userID int64) (*model.Goal, error)
	Insert(ctx context.Context, goal *model.Goal) error
	Update(ctx context.Context, goal *model.Goal) error
	// Delete removes the goal and detaches the user's transactions that
	// reference it (their goal_id becomes NULL) in one transaction.
	Delete(ctx context.Context, id, userID int64) error
}

type TransactionRepository interface {
	// ListByUser returns the user's transactions newest first, each
	// enriched with the joined category name and icon.
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
	FindByID(ctx context.Context, id, userID int64) (*model.Transaction, error)
	// SumGoalIncome returns the sum of income-type transaction amounts
	// referencing the goal, 0 when there are none.
	SumGoalIncome(ctx context.Context, goalID, userID int64) (float64, error)
	Insert(ctx context.Context, transaction *model.Transaction) error
	Update(ctx context.Context, transaction *model.Transaction) error
	Delete(ctx context.Context, id, userID int64) error
}
