package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tahmid/fintrack/internal/apperror"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperror.ValidationFailed("name", "name is required"), http.StatusBadRequest, "validation_error"},
		{"not found", apperror.NotFound("goal", 42), http.StatusNotFound, "not_found"},
		{"unauthorized", apperror.Unauthorized("valid authentication required"), http.StatusUnauthorized, "unauthorized"},
		{"conflict", apperror.Conflict("email already in use"), http.StatusConflict, "conflict"},
		{"forbidden", apperror.Forbidden("nope"), http.StatusForbidden, "forbidden"},
		{"wrapped", fmt.Errorf("creating category: %w", apperror.ValidationFailed("budget", "budget must not be negative")), http.StatusBadRequest, "validation_error"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), fmt.Sprintf("%q", tt.wantType))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: secret connection string leaked"))

	assert.NotContains(t, rec.Body.String(), "connection string")
}
