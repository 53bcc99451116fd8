// Package http serves the htmx dashboard over the transaction service.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"paisa/internal/cache"
	"paisa/internal/charts"
	"paisa/internal/core"
	applog "paisa/internal/log"
	appweb "paisa/web"
)

// TransactionService is the slice of the service layer the handlers need.
// *services.TransactionService satisfies it.
type TransactionService interface {
	Create(ctx context.Context, tx core.Transaction) (string, error)
	List(ctx context.Context) ([]core.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	http.Server
	templates *template.Template
	service   TransactionService
	generator *charts.Generator
	logger    *applog.Logger

	rateLimiter *rateLimiter

	// The full transaction list is small and read on every partial, so it
	// lives behind a short-TTL cache purged on every mutation.
	listCache    *cache.LRUCache[[]core.Transaction]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, service TransactionService) *Server {
	mux := http.NewServeMux()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)

	// Every request carries a context logger tagged with a fresh request id.
	handler := applog.Middleware(logger)(
		applog.RequestIDMiddleware(func(*http.Request) string {
			return generateRequestID()
		})(mux))

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: handler,
		},
		logger:       logger,
		service:      service,
		generator:    charts.NewGenerator(),
		rateLimiter:  newRateLimiter(),
		listCache:    cache.NewLRUCache[[]core.Transaction](8, 30*time.Second),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.listCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("/transactions/delete", s.withSecurityHeaders(s.handleDeleteTransaction))
	// UI partials
	mux.HandleFunc("/ui/dashboard", s.withSecurityHeaders(s.handleDashboard))
	// Server-rendered chart images
	mux.HandleFunc("/charts/mode-split.png", s.withSecurityHeaders(s.handleModeSplitChart))
	mux.HandleFunc("/charts/daily.png", s.withSecurityHeaders(s.handleDailyChart))
	mux.HandleFunc("/charts/budget.png", s.withSecurityHeaders(s.handleBudgetChart))
	mux.HandleFunc("/charts/categories.png", s.withSecurityHeaders(s.handleCategoriesChart))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

const listCacheKey = "all"

// listTransactions returns the newest-first transaction list, cached.
func (s *Server) listTransactions(ctx context.Context) ([]core.Transaction, error) {
	if txs, found := s.listCache.Get(listCacheKey); found {
		slog.DebugContext(ctx, "Transaction list cache hit", "count", len(txs))
		result := make([]core.Transaction, len(txs))
		copy(result, txs)
		return result, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	txs, err := s.service.List(cctx)
	if err != nil {
		return nil, err
	}

	s.listCache.Set(listCacheKey, txs)
	slog.DebugContext(ctx, "Transaction list cached", "count", len(txs))
	return txs, nil
}

// invalidateList drops the cached transaction list after a mutation.
func (s *Server) invalidateList() {
	s.listCache.Purge()
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		ctx := r.Context()
		logger := applog.FromContext(ctx)

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutations only; reads are cheap and cached.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
