package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aryansawant3579-cell/review-app/internal/analytics"
	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/config"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/repository"
	"github.com/aryansawant3579-cell/review-app/internal/review"
	"github.com/aryansawant3579-cell/review-app/internal/store"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg       config.Config
	store     *store.Store
	repo      *repository.Repository
	auth      *auth.Service
	reviews   *review.Service
	analytics *analytics.Service
	logger    *log.Logger
	router    chi.Router
	httpSrv   *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, authSvc *auth.Service, reviews *review.Service, analyticsSvc *analytics.Service, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:       cfg,
		store:     st,
		repo:      repo,
		auth:      authSvc,
		reviews:   reviews,
		analytics: analyticsSvc,
		logger:    logger,
		router:    r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/public/branches", s.handlePublicBranches)

		// Review intake is open to unauthenticated customers.
		r.Post("/reviews", s.handleCreateReview)

		r.Group(func(r chi.Router) {
			r.Use(s.requireActor)

			r.Get("/branches", s.handleListBranches)
			r.Post("/branches", s.handleCreateBranch)

			r.Get("/reviews", s.handleListReviews)
			r.Route("/reviews/{reviewID}", func(r chi.Router) {
				r.Get("/", s.handleGetReview)
				r.Post("/respond", s.handleRespondReview)
				r.Post("/escalate", s.handleEscalateReview)
			})

			r.Get("/templates", s.handleListTemplates)
			r.Post("/templates", s.handleCreateTemplate)

			r.Get("/analytics/dashboard", s.handleDashboard)
			r.Get("/analytics/trends", s.handleTrends)
		})
	})
}

// requireActor resolves the bearer token into an Actor and stores it on the
// request context.
func (s *Server) requireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		actor, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(r *http.Request) (domain.Actor, bool) {
	actor, ok := r.Context().Value(actorContextKey).(domain.Actor)
	return actor, ok
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
