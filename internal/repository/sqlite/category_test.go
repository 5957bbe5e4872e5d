package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/model"
)

func TestCategoryListIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	seedCategory(t, db, alice, "Rent")
	seedCategory(t, db, alice, "Food")
	seedCategory(t, db, bob, "Travel")

	categories, err := db.Categories().ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, alice, c.UserID)
	}
}

func TestCategoryFindByIDScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	c := seedCategory(t, db, alice, "Rent")

	found, err := db.Categories().FindByID(ctx, c.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Rent", found.Name)

	// Bob sees nothing, not a forbidden.
	_, err = db.Categories().FindByID(ctx, c.ID, bob)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCategoryUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	c := seedCategory(t, db, alice, "Rent")

	c.Name = "Housing"
	c.Budget = 1500
	c.Icon = "fa-house"
	c.Color = "#3b82f6"
	require.NoError(t, db.Categories().Update(ctx, c))

	found, err := db.Categories().FindByID(ctx, c.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Housing", found.Name)
	assert.Equal(t, 1500.0, found.Budget)

	missing := &model.Category{ID: 9999, UserID: alice, Name: "Ghost"}
	assert.ErrorIs(t, db.Categories().Update(ctx, missing), apperror.ErrNotFound)
}

func TestCategoryDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	c := seedCategory(t, db, alice, "Rent")

	require.NoError(t, db.Categories().Delete(ctx, c.ID, alice))
	require.NoError(t, db.Categories().Delete(ctx, c.ID, alice))

	_, err := db.Categories().FindByID(ctx, c.ID, alice)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCategoryDeleteBlockedByTransactions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	c := seedCategory(t, db, alice, "Food")

	tx := &model.Transaction{
		UserID:          alice,
		CategoryID:      c.ID,
		Type:            model.TransactionTypeExpense,
		Amount:          12.5,
		Description:     "groceries",
		TransactionDate: mustDate(t, "2026-08-15"),
	}
	require.NoError(t, db.Transactions().Insert(ctx, tx))

	err := db.Categories().Delete(ctx, c.ID, alice)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// The category and the transaction are both still there.
	_, err = db.Categories().FindByID(ctx, c.ID, alice)
	require.NoError(t, err)
	kept, err := db.Transactions().FindByID(ctx, tx.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, c.ID, kept.CategoryID)

	// Once the transaction is gone the delete goes through.
	require.NoError(t, db.Transactions().Delete(ctx, tx.ID, alice))
	require.NoError(t, db.Categories().Delete(ctx, c.ID, alice))
	_, err = db.Categories().FindByID(ctx, c.ID, alice)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
