// Package server provides the HTTP REST API for the admissions advisor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/admissions-advisor/internal/chances"
	"github.com/jonathan/admissions-advisor/internal/classify"
	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/jonathan/admissions-advisor/internal/drafts"
	"github.com/jonathan/admissions-advisor/internal/metrics"
	"github.com/jonathan/admissions-advisor/internal/reference"
	"github.com/jonathan/admissions-advisor/internal/server/middleware"
	"github.com/jonathan/admissions-advisor/internal/server/ratelimit"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	profiles    store.ProfileStore
	drafts      drafts.Store
	tables      *reference.Tables
	classifier  *classify.Classifier
	estimator   *chances.Estimator
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	origin      string
}

// Deps are the collaborators the server needs.
type Deps struct {
	Profiles store.ProfileStore
	Drafts   drafts.Store
	JWT      *config.JWTConfig
	Logger   *zap.Logger
	// Tables overrides the embedded reference tables.
	Tables *reference.Tables
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Profiles == nil || deps.Drafts == nil {
		return nil, errors.New("profile store and draft store are required")
	}
	if deps.JWT == nil {
		return nil, errors.New("JWT configuration is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tables := deps.Tables
	if tables == nil {
		tables = reference.Default()
	}

	s := &Server{
		profiles:    deps.Profiles,
		drafts:      deps.Drafts,
		tables:      tables,
		classifier:  classify.New(tables),
		estimator:   chances.New(tables),
		jwtService:  NewJWTService(deps.JWT),
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit)),
		logger:      logger,
		origin:      cfg.Server.AllowedOrigin,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Stateless endpoints
	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("GET /schools", s.handleListSchools)
	mux.HandleFunc("POST /profiles", s.handleCreateProfile)

	// Profile endpoints; the bearer token must belong to {id}
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	owner := middleware.RequireProfile("id")
	protect := func(h http.HandlerFunc) http.Handler { return auth(owner(h)) }

	mux.Handle("GET /profiles/{id}", protect(s.handleGetProfile))
	mux.Handle("DELETE /profiles/{id}", protect(s.handleDeleteProfile))
	mux.Handle("PUT /profiles/{id}/academics", protect(s.handleSaveAcademics))
	mux.Handle("PUT /profiles/{id}/testing", protect(s.handleSaveTesting))
	mux.Handle("POST /profiles/{id}/activities", protect(s.handleCreateActivity))
	mux.Handle("POST /profiles/{id}/awards", protect(s.handleCreateAward))
	mux.Handle("POST /profiles/{id}/schools", protect(s.handleCreateSchool))
	mux.Handle("POST /profiles/{id}/goals", protect(s.handleCreateGoal))
	mux.Handle("GET /profiles/{id}/chances", protect(s.handleChances))

	// Chat drafts
	mux.Handle("POST /profiles/{id}/messages", protect(s.handleMessage))
	mux.Handle("GET /profiles/{id}/drafts", protect(s.handleListDrafts))
	mux.Handle("POST /profiles/{id}/drafts/{draft_id}/confirm", protect(s.handleConfirmDraft))
	mux.Handle("DELETE /profiles/{id}/drafts/{draft_id}", protect(s.handleDiscardDraft))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
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
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. Stores are owned by the caller.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		metrics.HTTPRequestDuration.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Observe(elapsed.Seconds())
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code; unexpected errors are logged and not echoed.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	retryAfter := max(int(info.RetryAfter.Round(time.Second).Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	s.logger.Warn("rate limit exceeded", zap.Int("limit", info.Limit), zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"message":     "Rate limit exceeded. Please try again later.",
		"limit":       info.Limit,
		"remaining":   info.Remaining,
		"reset_at":    info.ResetTime.Format(time.RFC3339),
		"retry_after": retryAfter,
	})
}
