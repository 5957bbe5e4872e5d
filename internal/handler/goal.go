package handler

import (
	"log/slog"
	"net/http"

	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/service"
)

// GoalHandler exposes the /api/goals CRUD endpoints.
type GoalHandler struct {
	finance *service.FinanceService
	logger  *slog.Logger
}

func NewGoalHandler(finance *service.FinanceService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{finance: finance, logger: logger}
}

// HandleList returns the user's goals with the saved amount computed
// from their income transactions.
//
// HTTP: GET /api/goals
func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	goals, err := h.finance.ListGoals(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("listing goals", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if goals == nil {
		goals = []model.Goal{}
	}

	writeJSON(w, http.StatusOK, goals)
}

// HandleCreate adds a savings goal.
//
// HTTP: POST /api/goals
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var goal model.Goal
	if err := decodeJSON(r, &goal); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.finance.CreateGoal(r.Context(), user.ID, &goal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate replaces a goal the user owns.
//
// HTTP: PUT /api/goals/{id}
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var goal model.Goal
	if err := decodeJSON(r, &goal); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.finance.UpdateGoal(r.Context(), user.ID, id, &goal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a goal. Transactions that pointed at it are
// detached, not deleted.
//
// HTTP: DELETE /api/goals/{id}
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.finance.DeleteGoal(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
