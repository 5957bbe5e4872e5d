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

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore reads and writes the users table.
type UserStore struct {
	conn *sql.DB
}

// FindByEmail returns the user with the given email.
// Returns apperror.ErrNotFound when no such user exists.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: finding user by email: %w", err)
	}

	return &u, nil
}

// Create inserts the user and their seed categories in one transaction:
// a registration either leaves the account fully set up with its
// default categories, or leaves no trace at all.
//
// The email column carries a UNIQUE constraint, so two concurrent
// registrations with the same email cannot both commit; the loser
// surfaces apperror.ErrConflict.
func (s *UserStore) Create(ctx context.Context, user *model.User, seed []*model.Category) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, email, password) VALUES (?, ?, ?)`,
		user.Name, user.Email, user.Password,
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return apperror.Conflict("email already in use")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading generated user id: %w", err)
	}

	for _, c := range seed {
		c.UserID = user.ID
		res, err := tx.ExecContext(ctx,
			`INSERT INTO categories (user_id, name, budget, icon, color) VALUES (?, ?, ?, ?, ?)`,
			c.UserID, c.Name, c.Budget, c.Icon, c.Color,
		)
		if err != nil {
			return fmt.Errorf("sqlite: seeding category %q for user %d: %w", c.Name, user.ID, err)
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("sqlite: reading generated category id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user creation: %w", err)
	}

	return nil
}
