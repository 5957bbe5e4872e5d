package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tahmid/fintrack/internal/apperror"
	"github.com/tahmid/fintrack/internal/auth"
	"github.com/tahmid/fintrack/internal/service"
)

// AuthHandler exposes registration, the form login flow, logout and
// the current-user endpoint.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *auth.SessionService
	logger   *slog.Logger
}

func NewAuthHandler(accounts *service.AccountService, sessions *auth.SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse mirrors the stored account with the password field
// always serialized as null. Clients get the shape they submitted
// back, never the digest.
type registerResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

// HandleRegister creates an account.
//
// HTTP: POST /api/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// HandleLogin authenticates form credentials and issues the session
// cookie. The form field is named "username" but carries the email.
// Every failure gets the same fixed 401 body so the response cannot
// distinguish a wrong password from an unknown account.
//
// HTTP: POST /api/login (application/x-www-form-urlencoded)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, apperror.ValidationFailed("body", "request body must be a valid form"))
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	principal, err := h.accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "Invalid email or password.",
			})
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	token, err := h.sessions.Issue(principal.Email)
	if err != nil {
		h.logger.Error("issuing session token", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	w.WriteHeader(http.StatusOK)
}

// HandleLogout clears the session cookie. The token itself stays
// valid until expiry; without the cookie the browser cannot send it.
//
// HTTP: POST /api/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type meResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/user/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}
