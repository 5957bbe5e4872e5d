package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/auth"
)

func newAccountService(users *fakeUserRepo) *AccountService {
	return NewAccountService(users, auth.NewPasswordServiceForTest(), slog.New(slog.DiscardHandler))
}

func TestAccountServiceRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAccountService(users)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.Password, "digest must not leave the service")

	stored := users.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.Password, "password must be hashed at rest")

	require.Len(t, users.seeded, 2)
	assert.Equal(t, "Income", users.seeded[0].Name)
	assert.Equal(t, float64(0), users.seeded[0].Budget)
	assert.Equal(t, "Food", users.seeded[1].Name)
	assert.Equal(t, float64(5000), users.seeded[1].Budget)
}

func TestAccountServiceRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAccountService(users)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "alice@example.com", "different")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAccountServiceRegisterValidation(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "a@b.com", "pw"},
		{"missing email", "Alice", "", "pw"},
		{"malformed email", "Alice", "not-an-email", "pw"},
		{"missing password", "Alice", "a@b.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestAccountServiceAuthenticate(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAccountService(users)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	p, err := svc.Authenticate(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, RoleUser, p.Role)
	assert.Empty(t, p.User.Password)
}

func TestAccountServiceAuthenticateFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAccountService(users)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPW := svc.Authenticate(context.Background(), "alice@example.com", "nope")
	_, unknown := svc.Authenticate(context.Background(), "ghost@example.com", "secret")

	assert.ErrorIs(t, wrongPW, apperror.ErrUnauthorized)
	assert.ErrorIs(t, unknown, apperror.ErrUnauthorized)
}

func TestAccountServiceResolvePrincipal(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAccountService(users)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	user, err := svc.ResolvePrincipal(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.Password)

	_, err = svc.ResolvePrincipal(context.Background(), "gone@example.com")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
