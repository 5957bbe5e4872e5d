package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/repository"
)

// FinanceService owns the CRUD logic for categories, goals and
// transactions. Every operation takes the authenticated user's ID and
// every repository call is scoped by it; ownership violations surface
// as ErrNotFound so the API never confirms another tenant's data
// exists.
type FinanceService struct {
	categories   repository.CategoryRepository
	goals        repository.GoalRepository
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

func NewFinanceService(
	categories repository.CategoryRepository,
	goals repository.GoalRepository,
	transactions repository.TransactionRepository,
	logger *slog.Logger,
) *FinanceService {
	return &FinanceService{
		categories:   categories,
		goals:        goals,
		transactions: transactions,
		logger:       logger,
	}
}

// Categories

func (s *FinanceService) ListCategories(ctx context.Context, userID int64) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *FinanceService) CreateCategory(ctx context.Context, userID int64, c *model.Category) (*model.Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = 0
	c.UserID = userID
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	s.logger.Info("category created", slog.Int64("userID", userID), slog.Int64("categoryID", c.ID))
	return c, nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, userID, id int64, c *model.Category) (*model.Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = id
	c.UserID = userID
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to orphan transactions: a category still
// referenced by any of the user's transactions cannot be removed. The
// store enforces this atomically and surfaces ErrConflict. Deleting a
// category that does not exist is a no-op.
func (s *FinanceService) DeleteCategory(ctx context.Context, userID, id int64) error {
	return s.categories.Delete(ctx, id, userID)
}

func validateCategory(c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.ValidationFailed("name", "name is required")
	}
	if c.Budget < 0 {
		return apperror.ValidationFailed("budget", "budget must not be negative")
	}
	return nil
}

// Goals

// ListGoals returns the user's goals with Saved populated: the sum of
// income transactions pointing at each goal, computed at read time.
func (s *FinanceService) ListGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		saved, err := s.transactions.SumGoalIncome(ctx, goals[i].ID, userID)
		if err != nil {
			return nil, fmt.Errorf("summing goal %d contributions: %w", goals[i].ID, err)
		}
		goals[i].Saved = saved
	}
	return goals, nil
}

func (s *FinanceService) CreateGoal(ctx context.Context, userID int64, g *model.Goal) (*model.Goal, error) {
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	g.ID = 0
	g.UserID = userID
	if err := s.goals.Insert(ctx, g); err != nil {
		return nil, fmt.Errorf("inserting goal: %w", err)
	}
	s.logger.Info("goal created", slog.Int64("userID", userID), slog.Int64("goalID", g.ID))
	return g, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, userID, id int64, g *model.Goal) (*model.Goal, error) {
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	g.ID = id
	g.UserID = userID
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	saved, err := s.transactions.SumGoalIncome(ctx, g.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("summing goal %d contributions: %w", g.ID, err)
	}
	g.Saved = saved
	return g, nil
}

// DeleteGoal removes the goal and detaches any transactions that
// referenced it; the transactions themselves survive.
func (s *FinanceService) DeleteGoal(ctx context.Context, userID, id int64) error {
	return s.goals.Delete(ctx, id, userID)
}

func validateGoal(g *model.Goal) error {
	if strings.TrimSpace(g.Name) == "" {
		return apperror.ValidationFailed("name", "name is required")
	}
	if g.TargetAmount <= 0 {
		return apperror.ValidationFailed("targetAmount", "target amount must be positive")
	}
	if g.MonthlyContribution < 0 {
		return apperror.ValidationFailed("monthlyContribution", "monthly contribution must not be negative")
	}
	if g.TargetDate.IsZero() {
		return apperror.ValidationFailed("targetDate", "target date is required")
	}
	return nil
}

// Transactions

func (s *FinanceService) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}

func (s *FinanceService) CreateTransaction(ctx context.Context, userID int64, t *model.Transaction) (*model.Transaction, error) {
	if err := s.validateTransaction(ctx, userID, t); err != nil {
		return nil, err
	}
	t.ID = 0
	t.UserID = userID
	if err := s.transactions.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("inserting transaction: %w", err)
	}
	s.logger.Info("transaction created",
		slog.Int64("userID", userID),
		slog.Int64("transactionID", t.ID),
		slog.String("type", t.Type),
	)
	return s.transactions.FindByID(ctx, t.ID, userID)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, userID, id int64, t *model.Transaction) (*model.Transaction, error) {
	if err := s.validateTransaction(ctx, userID, t); err != nil {
		return nil, err
	}
	t.ID = id
	t.UserID = userID
	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.transactions.FindByID(ctx, id, userID)
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.transactions.Delete(ctx, id, userID)
}

// validateTransaction checks the value itself, then proves the
// referenced category (and goal, when set) belong to the caller. A
// reference to another tenant's row fails exactly like a reference to
// a row that was never created.
func (s *FinanceService) validateTransaction(ctx context.Context, userID int64, t *model.Transaction) error {
	if t.Type != model.TransactionTypeIncome && t.Type != model.TransactionTypeExpense {
		return apperror.ValidationFailed("type", "type must be income or expense")
	}
	if t.Amount <= 0 {
		return apperror.ValidationFailed("amount", "amount must be positive")
	}
	if t.TransactionDate.IsZero() {
		return apperror.ValidationFailed("transactionDate", "transaction date is required")
	}
	if t.CategoryID == 0 {
		return apperror.ValidationFailed("categoryId", "category is required")
	}
	if _, err := s.categories.FindByID(ctx, t.CategoryID, userID); err != nil {
		return err
	}
	if t.GoalID != nil {
		if _, err := s.goals.FindByID(ctx, *t.GoalID, userID); err != nil {
			return err
		}
	}
	return nil
}
