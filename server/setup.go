package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/metrics"
)

// ServerConfig holds configuration for the server
type ServerConfig struct {
	Demo    *chaos.Demo       // required
	Metrics *metrics.Registry // defaults to a fresh registry
	Logger  *slog.Logger
	Addr    string

	// EnableRequestLogging logs every request and response at info level.
	EnableRequestLogging bool
}

// ServerComponents holds the initialized server components
type ServerComponents struct {
	Demo    *chaos.Demo
	Metrics *metrics.Registry
	Handler http.Handler
	Logger  *slog.Logger
	addr    string
}

// TestServer represents a running test server instance
type TestServer struct {
	*ServerComponents
	HTTPServer *httptest.Server
}

// SetupServer wires the HTTP routes around a Demo.
// This is the shared logic used by both the serve command and tests
func SetupServer(config *ServerConfig) (*ServerComponents, error) {
	if config == nil || config.Demo == nil {
		return nil, errors.New("server config requires a Demo")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := config.Metrics
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	addr := config.Addr
	if addr == "" {
		addr = ":8080"
	}

	h := NewHandlers(config.Demo, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HandleHealth)
	mux.HandleFunc("GET /api/state", h.HandleState)
	mux.HandleFunc("PUT /api/status", h.HandleSetStatus)
	mux.HandleFunc("GET /api/property", h.HandleProperty)
	mux.HandleFunc("GET /api/payment", h.HandlePayment)
	mux.HandleFunc("POST /api/leads", h.HandleSubmitLead)
	mux.HandleFunc("GET /api/leads", h.HandleListLeads)
	mux.HandleFunc("DELETE /api/leads", h.HandleClearLeads)
	mux.HandleFunc("DELETE /api/toast", h.HandleDismissToast)
	mux.Handle("GET /metrics", registry.Handler())

	return &ServerComponents{
		Demo:    config.Demo,
		Metrics: registry,
		Handler: LoggingMiddleware(config.EnableRequestLogging, mux, logger, registry),
		Logger:  logger,
		addr:    addr,
	}, nil
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (sc *ServerComponents) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         sc.addr,
		Handler:      sc.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // degraded fetches are slow
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sc.Logger.Info("🚀 Starting leadsync HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	sc.Logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	sc.Logger.Info("HTTP server stopped")
	return nil
}

// NewTestServer creates a new test server instance using the shared server setup
func NewTestServer(config *ServerConfig) (*TestServer, error) {
	components, err := SetupServer(config)
	if err != nil {
		return nil, err
	}
	return &TestServer{
		ServerComponents: components,
		HTTPServer:       httptest.NewServer(components.Handler),
	}, nil
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.HTTPServer != nil {
		ts.HTTPServer.Close()
	}
}

// URL returns the base URL of the test server
func (ts *TestServer) URL() string {
	return ts.HTTPServer.URL
}

// LoggingMiddleware records request metrics and, when enabled, logs every request
func LoggingMiddleware(enableLogging bool, next http.Handler, logger *slog.Logger, registry *metrics.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if enableLogging {
			logger.Info("HTTP Request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"content_length", r.ContentLength,
			)
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		registry.RecordHTTPRequest(r.Method, routeLabel(r), wrapped.statusCode, duration)
		if enableLogging {
			logger.Info("HTTP Response",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", duration.String(),
			)
		}
	})
}

// routeLabel keeps metric cardinality bounded to the registered routes.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
