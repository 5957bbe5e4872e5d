// Package service contains the business logic layer: AccountService for
// registration and credentials, FinanceService for the user-owned
// entities. Services accept plain values and return domain errors; they
// know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/auth"
	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/repository"
)

// RoleUser is the role tag carried by every authenticated principal.
// There is exactly one role in the system.
const RoleUser = "USER"

// Principal is an authenticated identity: the email the session is
// bound to, plus the resolved account.
type Principal struct {
	Email string
	Role  string
	User  *model.User
}

// AccountService handles registration, credential checks and principal
// resolution.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAccountService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// defaultCategories returns the categories seeded for every new
// account. Every user starts with an "Income" bucket and a tracked
// "Food" budget.
func defaultCategories() []*model.Category {
	return []*model.Category{
		{Name: "Income", Budget: 0, Icon: "fa-money-bill-wave", Color: "#10b981"},
		{Name: "Food", Budget: 5000, Icon: "fa-utensils", Color: "#ef4444"},
	}
}

// Register creates an account: duplicate check, bcrypt hash, then a
// single transactional insert of the user and their default categories.
// The returned user has the digest cleared; it never crosses the
// service boundary.
//
// The pre-check keeps the common duplicate case cheap, but the real
// guarantee is the store's unique constraint — two concurrent
// registrations both pass the pre-check and the loser still surfaces
// ErrConflict.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperror.Conflict("email already in use")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	digest, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: digest,
	}

	if err := s.users.Create(ctx, user, defaultCategories()); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)

	user.Password = ""
	return user, nil
}

// Authenticate verifies the supplied credentials and returns the
// principal on success. An unknown email and a wrong password produce
// the same error, so responses cannot be used to enumerate accounts.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("looking up user for login: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	s.logger.Info("user authenticated", slog.Int64("userID", user.ID))

	user.Password = ""
	return &Principal{Email: user.Email, Role: RoleUser, User: user}, nil
}

// ResolvePrincipal maps an authenticated principal email to the user
// record. A session whose account has disappeared resolves to
// ErrUnauthorized, killing the session at the gate.
func (s *AccountService) ResolvePrincipal(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("unknown principal")
		}
		return nil, fmt.Errorf("resolving principal: %w", err)
	}

	user.Password = ""
	return user, nil
}
