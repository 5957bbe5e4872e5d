package handler

import (
	"log/slog"
	"net/http"

	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/service"
)

// TransactionHandler exposes the /api/transactions CRUD endpoints.
type TransactionHandler struct {
	finance *service.FinanceService
	logger  *slog.Logger
}

func NewTransactionHandler(finance *service.FinanceService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{finance: finance, logger: logger}
}

// HandleList returns the user's transactions, newest first, with the
// category name and icon joined in.
//
// HTTP: GET /api/transactions
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	transactions, err := h.finance.ListTransactions(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("listing transactions", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	writeJSON(w, http.StatusOK, transactions)
}

// HandleCreate records a transaction against one of the user's
// categories, optionally earmarked for a goal.
//
// HTTP: POST /api/transactions
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var tx model.Transaction
	if err := decodeJSON(r, &tx); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.finance.CreateTransaction(r.Context(), user.ID, &tx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate replaces a transaction the user owns.
//
// HTTP: PUT /api/transactions/{id}
func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var tx model.Transaction
	if err := decodeJSON(r, &tx); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.finance.UpdateTransaction(r.Context(), user.ID, id, &tx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a transaction.
//
// HTTP: DELETE /api/transactions/{id}
func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.finance.DeleteTransaction(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
