package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/blob"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/llm"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/pdf"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/qrcode"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/server/middleware"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/server/ratelimit"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
)

// shutdownTimeout bounds how long in-flight requests may finish after a stop signal
const shutdownTimeout = 30 * time.Second

// Deps are the collaborators the server is built from
type Deps struct {
	Config   *config.Config
	Store    Store
	Blobs    blob.Store
	Renderer pdf.Renderer
	QR       qrcode.Encoder
	// LLM is optional; without it text improvement uses heuristics
	LLM llm.Client
	// RateLimit is optional; nil selects in-memory counters
	RateLimit ratelimit.Backend
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	store       Store
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	resumes     *ResumeService
	templates   *TemplateService
	improver    *suggestions.Improver
	blobs       blob.Store
}

// New creates a new server instance
func New(deps Deps) (*Server, error) {
	if deps.Config == nil || deps.Store == nil || deps.Blobs == nil {
		return nil, fmt.Errorf("server requires config, store and blob store")
	}
	if err := deps.Config.JWT.Validate(); err != nil {
		return nil, fmt.Errorf("invalid JWT configuration: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	qr := deps.QR
	if qr == nil {
		qr = qrcode.NewPNGEncoder()
	}

	s := &Server{
		cfg:         deps.Config,
		store:       deps.Store,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig(), deps.RateLimit, logger),
		jwtService:  NewJWTService(&deps.Config.JWT),
		userService: NewUserService(deps.Store, &deps.Config.Password),
		resumes:     NewResumeService(deps.Store, qr, deps.Renderer, deps.Config.Frontend.URL, logger),
		templates:   NewTemplateService(deps.Store),
		improver:    suggestions.NewImprover(deps.LLM, logger),
		blobs:       deps.Blobs,
	}
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, deps.Blobs, deps.Config.Blob.Backend, logger)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Server.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: deps.Config.PDF.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	return s.withRateLimit(s.withMetrics(s.withLogging(s.withCORS(s.routes()))))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	if s.cfg.Blob.Backend == config.BlobBackendDisk {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.Blob.Dir))))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("GET /api/auth/me", s.auth(s.authHandler.Me))
	mux.Handle("PUT /api/auth/update-profile", s.auth(s.authHandler.UpdateProfile))
	mux.Handle("POST /api/auth/profile-photo", s.auth(s.authHandler.UploadProfilePhoto))

	// Resumes
	mux.HandleFunc("GET /api/share/{link}", s.handleGetSharedResume)
	mux.HandleFunc("GET /api/share/{link}/pdf", s.handleSharedResumePDF)
	mux.Handle("POST /api/resumes", s.auth(s.handleCreateResume))
	mux.Handle("GET /api/resumes", s.auth(s.handleListResumes))
	mux.Handle("GET /api/resumes/{id}", s.auth(s.handleGetResume))
	mux.Handle("PUT /api/resumes/{id}", s.auth(s.handleUpdateResume))
	mux.Handle("DELETE /api/resumes/{id}", s.auth(s.handleDeleteResume))
	mux.Handle("POST /api/resumes/{id}/duplicate", s.auth(s.handleDuplicateResume))
	mux.Handle("PATCH /api/resumes/{id}/visibility", s.auth(s.handleSetVisibility))
	mux.Handle("GET /api/resumes/{id}/pdf", s.optionalAuth(s.handleResumePDF))
	mux.Handle("GET /api/resumes/{id}/html", s.auth(s.handleResumeHTML))
	mux.Handle("GET /api/resumes/{id}/text", s.auth(s.handleResumeText))
	mux.Handle("GET /api/resumes/{id}/document", s.auth(s.handleResumeDocument))
	mux.Handle("POST /api/resumes/{id}/calculate-score", s.auth(s.handleCalculateScore))
	mux.Handle("GET /api/resumes/{id}/suggestions", s.auth(s.handleResumeSuggestions))

	// Writing assistant
	mux.HandleFunc("GET /api/suggestions/keywords", s.handleKeywords)
	mux.Handle("POST /api/suggestions/improve", s.auth(s.handleImproveText))

	// Templates
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)
	mux.Handle("POST /api/templates/upload-custom", s.auth(s.handleUploadCustomTemplate))

	// Admin
	mux.HandleFunc("POST /api/admin/login", s.authHandler.AdminLogin)
	mux.Handle("GET /api/admin/users", s.admin(s.handleAdminListUsers))
	mux.Handle("GET /api/admin/resumes", s.admin(s.handleAdminListResumes))
	mux.Handle("GET /api/admin/analytics", s.admin(s.handleAdminAnalytics))
	mux.Handle("GET /api/admin/templates", s.admin(s.handleAdminListTemplates))
	mux.Handle("POST /api/admin/templates", s.admin(s.handleAdminCreateTemplate))
	mux.Handle("PUT /api/admin/templates/{id}", s.admin(s.handleAdminUpdateTemplate))
	mux.Handle("DELETE /api/admin/templates/{id}", s.admin(s.handleAdminDeleteTemplate))
	mux.Handle("PATCH /api/admin/templates/{id}/toggle", s.admin(s.handleAdminToggleTemplate))

	return mux
}

// auth requires a valid bearer token
func (s *Server) auth(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// optionalAuth identifies the caller when a token is sent
func (s *Server) optionalAuth(h http.HandlerFunc) http.Handler {
	return middleware.OptionalAuth(s.jwtService.AsTokenValidator())(h)
}

// admin requires a valid bearer token belonging to an admin account
func (s *Server) admin(h http.HandlerFunc) http.Handler {
	return s.auth(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserID(r)
		if err := s.userService.RequireAdmin(r.Context(), userID); err != nil {
			var notFound *ErrUserNotFound
			if errors.As(err, &notFound) {
				err = &ErrAdminRequired{}
			}
			s.fail(w, r, err)
			return
		}
		h(w, r)
	})
}

// Start begins listening for requests and shuts down gracefully when ctx is
// cancelled or SIGINT/SIGTERM arrives
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the configured frontend
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.Frontend.URL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(r.Context(), clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			observability.RateLimited.WithLabelValues(r.URL.Path).Inc()
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withMetrics records request counts and latency by route pattern
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		// ServeMux records the matched pattern on the request it was handed
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		observability.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(m.Code)).Inc()
		observability.HTTPDuration.WithLabelValues(route, r.Method).Observe(m.Duration.Seconds())
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", m.Code),
			zap.Duration("duration", m.Duration),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail writes err as an error response
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, s.logger, r, err)
}

// pathID parses the {id} path value
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user, or uuid.Nil for anonymous requests
func callerID(r *http.Request) uuid.UUID {
	id, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Too many requests from this IP, please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
