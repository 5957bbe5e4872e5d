// Package server is the composition root: it wires the database,
// services, handlers and middleware into a router and runs the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tahmid/fintrack/internal/auth"
	"github.com/tahmid/fintrack/internal/config"
	"github.com/tahmid/fintrack/internal/handler"
	"github.com/tahmid/fintrack/internal/middleware"
	sqliteRepo "github.com/tahmid/fintrack/internal/repository/sqlite"
	"github.com/tahmid/fintrack/internal/service"
)

// Server owns the router and the database connection. The connection
// is closed during shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, password and
// session services, the account and finance services on top of the
// repository interfaces, and the handlers on top of those.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	sessions, err := auth.NewSessionService(s.config.SessionSecret, s.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	accounts := service.NewAccountService(s.db.Users(), passwords, s.logger)
	finance := service.NewFinanceService(s.db.Categories(), s.db.Goals(), s.db.Transactions(), s.logger)

	authHandler := handler.NewAuthHandler(accounts, sessions, s.logger)
	categoryHandler := handler.NewCategoryHandler(finance, s.logger)
	goalHandler := handler.NewGoalHandler(finance, s.logger)
	transactionHandler := handler.NewTransactionHandler(finance, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The browser frontend is served from a different origin, so the
	// session cookie only flows when credentials are allowed.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.Route("/api", func(r chi.Router) {
		// Open routes: account creation and the login form.
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		// Everything else requires a valid session cookie.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(sessions, accounts))

			r.Get("/user/me", authHandler.HandleMe)

			r.Get("/categories", categoryHandler.HandleList)
			r.Post("/categories", categoryHandler.HandleCreate)
			r.Put("/categories/{id}", categoryHandler.HandleUpdate)
			r.Delete("/categories/{id}", categoryHandler.HandleDelete)

			r.Get("/goals", goalHandler.HandleList)
			r.Post("/goals", goalHandler.HandleCreate)
			r.Put("/goals/{id}", goalHandler.HandleUpdate)
			r.Delete("/goals/{id}", goalHandler.HandleDelete)

			r.Get("/transactions", transactionHandler.HandleList)
			r.Post("/transactions", transactionHandler.HandleCreate)
			r.Put("/transactions/{id}", transactionHandler.HandleUpdate)
			r.Delete("/transactions/{id}", transactionHandler.HandleDelete)
		})
	})

	return nil
}

// Handler exposes the configured router, mainly for tests that mount
// the full API on an httptest server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
