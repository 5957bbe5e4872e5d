package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/auth"
	"github.com/tahmid/fintrack/internal/model"
	"github.com/tahmid/fintrack/internal/service"
)

// CategoryHandler exposes the /api/categories CRUD endpoints. Every
// route sits behind the session middleware; the owner always comes
// from the request context.
type CategoryHandler struct {
	finance *service.FinanceService
	logger  *slog.Logger
}

func NewCategoryHandler(finance *service.FinanceService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{finance: finance, logger: logger}
}

// pathID parses the {id} route parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "id must be a positive integer")
	}
	return id, nil
}

// currentUser returns the authenticated user set by the session
// middleware. A miss here means the route was wired outside the
// protected group.
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return nil, false
	}
	return user, true
}

// HandleList returns all of the user's categories.
//
// HTTP: GET /api/categories
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	categories, err := h.finance.ListCategories(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("listing categories", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// HandleCreate adds a category.
//
// HTTP: POST /api/categories
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var category model.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.finance.CreateCategory(r.Context(), user.ID, &category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate replaces a category the user owns.
//
// HTTP: PUT /api/categories/{id}
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var category model.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.finance.UpdateCategory(r.Context(), user.ID, id, &category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a category. A category still referenced by
// transactions is refused with a conflict.
//
// HTTP: DELETE /api/categories/{id}
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.finance.DeleteCategory(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
