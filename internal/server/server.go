// Package server provides the HTTP REST API for climb.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/cache"
	"github.com/jonathan/climb/internal/config"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/llm"
	"github.com/jonathan/climb/internal/metrics"
	"github.com/jonathan/climb/internal/server/middleware"
	"github.com/jonathan/climb/internal/server/ratelimit"
	"github.com/jonathan/climb/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DBClient is the subset of *db.DB the handlers use.
type DBClient interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateApplication(ctx context.Context, userID uuid.UUID, input *db.ApplicationCreateInput) (*db.Application, error)
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*db.Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	UpdateApplicationStatus(ctx context.Context, userID, id uuid.UUID, status types.Stage) (*db.Application, error)
	DeleteApplication(ctx context.Context, userID, id uuid.UUID) error

	CreateResume(ctx context.Context, userID uuid.UUID, title string, content *types.ResumeContent) (*db.Resume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	CountResumes(ctx context.Context, userID uuid.UUID) (int, error)
}

// Options holds the server's dependencies. Cache and LLM may be nil.
type Options struct {
	Port      int
	DB        DBClient
	Cache     *cache.Cache
	LLM       llm.Client
	Logger    *zap.Logger
	JWT       *config.JWTConfig
	Password  *config.PasswordConfig
	RateLimit *ratelimit.Config
	// Now defaults to time.Now; the forecast endpoints measure history against it.
	Now func() time.Time
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          DBClient
	cache       *cache.Cache
	llm         llm.Client
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	now         func() time.Time
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.DB == nil {
		return nil, errors.New("server requires a database")
	}
	if opts.JWT == nil || opts.Password == nil {
		return nil, errors.New("server requires JWT and password configuration")
	}

	s := &Server{
		db:     opts.DB,
		cache:  opts.Cache,
		llm:    opts.LLM,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.rateLimiter = ratelimit.NewLimiter(opts.RateLimit)
	s.jwtService = NewJWTService(opts.JWT)
	s.userService = NewUserService(opts.DB, opts.Password)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, s.logger)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withMetrics(s.withCORS(s.routes())))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", protected(s.authHandler.UpdatePassword))

	// Stateless calculators
	mux.HandleFunc("POST /forecast/projection", s.handleProjection)
	mux.HandleFunc("POST /ats/score", s.handleScore)

	// Application tracker
	mux.Handle("GET /applications", protected(s.handleListApplications))
	mux.Handle("POST /applications", protected(s.handleCreateApplication))
	mux.Handle("GET /applications/{id}", protected(s.handleGetApplication))
	mux.Handle("PUT /applications/{id}/status", protected(s.handleUpdateApplicationStatus))
	mux.Handle("DELETE /applications/{id}", protected(s.handleDeleteApplication))

	// Forecasts over the caller's history
	mux.Handle("GET /forecast/metrics", protected(s.handleForecastMetrics))
	mux.Handle("POST /forecast/scenarios", protected(s.handleScenarios))
	mux.Handle("GET /forecast/goal", protected(s.handleGoal))
	mux.Handle("GET /dashboard", protected(s.handleDashboard))

	// Resumes and ATS
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("POST /resumes", protected(s.handleCreateResume))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("POST /resumes/{id}/ats", protected(s.handleScoreResume))
	mux.Handle("POST /ats/keywords", protected(s.handleExtractKeywords))

	return mux
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withMetrics records request counts and latency by route pattern.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// ServeMux fills in Pattern on the request it dispatched
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
// X-Forwarded-For is ignored since it is caller-controlled.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second) / time.Second)
		seconds = max(seconds, 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports whether the database is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "cache": "disabled", "keyword_extraction": "disabled"}
	if s.cache != nil {
		checks["cache"] = "enabled"
	}
	if s.llm != nil {
		checks["keyword_extraction"] = "enabled"
	}

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("health check: database unreachable", zap.Error(err))
		checks["database"] = "unreachable"
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "checks": checks})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "checks": checks})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, s.logger, status, message)
}

// serviceError maps err to a status; server-side failures are logged and
// reported without internal detail.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if status == http.StatusBadGateway {
			s.errorResponse(w, status, "Upstream service returned an invalid response")
			return
		}
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// userID returns the authenticated caller, writing a 401 if there is none.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the {id} path value, writing a 400 if it is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}
