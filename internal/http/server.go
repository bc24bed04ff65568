// Package http exposes the REST API: auth, transaction CRUD, reports,
// and admin user management, all JSON over a single envelope shape.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"paytrack/internal/auth"
	"paytrack/internal/events"
	"paytrack/internal/store"
)

type Server struct {
	store    *store.Store
	tokens   *auth.Manager
	recorder *events.Recorder
	logger   *slog.Logger

	httpServer *http.Server
}

// Options collects server wiring. Recorder may be nil when no broker
// is configured.
type Options struct {
	Addr              string
	Store             *store.Store
	Tokens            *auth.Manager
	Recorder          *events.Recorder
	CORSAllowedOrigin string
	Logger            *slog.Logger
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		store:    opts.Store,
		tokens:   opts.Tokens,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	handler := withRequestLogging(s.logger,
		withSecurityHeaders(
			withCORS(opts.CORSAllowedOrigin, mux)))

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	limiter := newLoginLimiter(5, time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/auth/login", limiter.wrap(s.handleLogin))
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/auth/me", s.withAuth(s.handleMe))

	mux.HandleFunc("GET /api/transactions", s.withAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withAuth(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{id}", s.withAuth(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withAuth(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withAuth(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/reports/balance", s.withAuth(s.handleBalanceReport))
	mux.HandleFunc("GET /api/reports/weekly", s.withAuth(s.handleWeeklyReport))
	mux.HandleFunc("GET /api/reports/monthly", s.withAuth(s.handleMonthlyReport))
	mux.HandleFunc("GET /api/reports/range", s.withAuth(s.handleRangeReport))
	mux.HandleFunc("GET /api/reports/summary", s.withAuth(s.handleSummaryReport))

	mux.HandleFunc("GET /api/users", s.withAuth(s.withAdmin(s.handleListUsers)))
	mux.HandleFunc("POST /api/users", s.withAuth(s.withAdmin(s.handleCreateUser)))
	mux.HandleFunc("PUT /api/users/{id}", s.withAuth(s.withAdmin(s.handleUpdateUser)))
	mux.HandleFunc("DELETE /api/users/{id}", s.withAuth(s.withAdmin(s.handleDeleteUser)))
}

// Handler exposes the fully wrapped handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady probes the backing store with a real read, so readiness
// flips when the spreadsheet or database becomes unreachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := s.store.ListUsers(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Backing store unreachable")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
