// Package server wires the application together: database, services,
// session manager, routes, and graceful shutdown. It is the composition
// root; nothing else constructs dependencies.
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

	"github.com/ebostrom/personal-site/internal/auth"
	"github.com/ebostrom/personal-site/internal/config"
	"github.com/ebostrom/personal-site/internal/handler"
	"github.com/ebostrom/personal-site/internal/middleware"
	sqliteRepo "github.com/ebostrom/personal-site/internal/repository/sqlite"
	"github.com/ebostrom/personal-site/internal/service"
	"github.com/ebostrom/personal-site/internal/session"
)

// Server owns the router and the database connection; the connection is
// closed during shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph and registers all routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
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

// Handler exposes the router; tests mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() error {
	passwords := auth.NewPasswordService(s.config.Security.BcryptCost)

	// Fresh databases get the demo fixture (five users, comments, skills).
	if err := s.db.Seed(context.Background(), passwords); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessions := session.NewManager(s.db.Sessions(), session.Config{
		CookieName: s.config.Session.CookieName,
		TTL:        time.Duration(s.config.Session.TTLHours) * time.Hour,
		Secure:     s.config.Session.Secure,
	}, s.logger)
	sessions.CleanupExpired(context.Background())

	authService := service.NewAuthService(s.db.Users(), passwords, s.logger)
	commentService := service.NewCommentService(s.db.Comments(), s.logger)
	skillService := service.NewSkillService(s.db.Skills(), s.logger)

	renderer, err := handler.NewRenderer(s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	pageHandler := handler.NewPageHandler(commentService, skillService, renderer, s.logger)
	authHandler := handler.NewAuthHandler(authService, sessions, renderer, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, renderer, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(sessions.Middleware)

	fileServer := http.FileServer(http.Dir("web/static"))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	s.router.Get("/", pageHandler.HandleHome)
	s.router.Get("/about", pageHandler.HandleAbout)
	s.router.Get("/contact", pageHandler.HandleContact)

	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Post("/logout", authHandler.HandleLogout)

	s.router.Post("/submit-comment", commentHandler.HandleSubmit)
	s.router.Post("/delete-comment", commentHandler.HandleDelete)
	s.router.Post("/edit-comment", commentHandler.HandleEdit)

	s.router.Get("/go-skill", pageHandler.HandleSkillPage("go"))
	s.router.Get("/javascript-skill", pageHandler.HandleSkillPage("javascript"))
	s.router.Get("/sql-skill", pageHandler.HandleSkillPage("sql"))

	// Every unmatched route renders the 404 page.
	s.router.NotFound(pageHandler.HandleNotFound)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
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
			slog.String("addr", srv.Addr),
			slog.String("database", s.config.Database.Path),
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

// Close releases the server's resources without running the HTTP loop.
// Used by tests that only need the handler.
func (s *Server) Close() error {
	return s.db.Close()
}
