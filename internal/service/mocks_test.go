package service

import (
	"context"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/model"
)

// In-memory fakes for the repository interfaces. They implement just
// enough behavior for the service tests: owner scoping, sequential
// IDs, not-found on misses.

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
	seeded []*model.Category
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User, seed []*model.Category) error {
	if _, ok := r.users[user.Email]; ok {
		return apperror.Conflict("email already in use")
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.Email] = &cp
	r.seeded = seed
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*model.Category
	txCounts   map[int64]int64
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[int64]*model.Category{},
		txCounts:   map[int64]int64{},
		nextID:     1,
	}
}

func (r *fakeCategoryRepo) ListByUser(_ context.Context, userID int64) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id, userID int64) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return nil, apperror.NotFound("category", id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Insert(_ context.Context, c *model.Category) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	cur, ok := r.categories[c.ID]
	if !ok || cur.UserID != c.UserID {
		return apperror.NotFound("category", c.ID)
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id, userID int64) error {
	if r.txCounts[id] > 0 {
		return apperror.Conflict("category has transactions and cannot be deleted")
	}
	c, ok := r.categories[id]
	if ok && c.UserID == userID {
		delete(r.categories, id)
	}
	return nil
}

type fakeGoalRepo struct {
	goals  map[int64]*model.Goal
	nextID int64
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: map[int64]*model.Goal{}, nextID: 1}
}

func (r *fakeGoalRepo) ListByUser(_ context.Context, userID int64) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id, userID int64) (*model.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, apperror.NotFound("goal", id)
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGoalRepo) Insert(_ context.Context, g *model.Goal) error {
	g.ID = r.nextID
	r.nextID++
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *model.Goal) error {
	cur, ok := r.goals[g.ID]
	if !ok || cur.UserID != g.UserID {
		return apperror.NotFound("goal", g.ID)
	}
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id, userID int64) error {
	g, ok := r.goals[id]
	if ok && g.UserID == userID {
		delete(r.goals, id)
	}
	return nil
}

type fakeTransactionRepo struct {
	transactions map[int64]*model.Transaction
	goalSums     map[int64]float64
	nextID       int64
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: map[int64]*model.Transaction{},
		goalSums:     map[int64]float64{},
		nextID:       1,
	}
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID int64) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id, userID int64) (*model.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return nil, apperror.NotFound("transaction", id)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransactionRepo) SumGoalIncome(_ context.Context, goalID, userID int64) (float64, error) {
	return r.goalSums[goalID], nil
}

func (r *fakeTransactionRepo) Insert(_ context.Context, t *model.Transaction) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, t *model.Transaction) error {
	cur, ok := r.transactions[t.ID]
	if !ok || cur.UserID != t.UserID {
		return apperror.NotFound("transaction", t.ID)
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id, userID int64) error {
	t, ok := r.transactions[id]
	if ok && t.UserID == userID {
		delete(r.transactions, id)
	}
	return nil
}
