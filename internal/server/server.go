// Package server provides the HTTP API over the credibility results view.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"

	"github.com/jonathan/credibility-report/internal/analysis"
	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/server/ratelimit"
	"github.com/jonathan/credibility-report/internal/session"
)

// Analyzer submits articles to the analysis service.
type Analyzer interface {
	SubmitURL(ctx context.Context, articleURL, purpose string) ([]byte, error)
	SubmitText(ctx context.Context, text, purpose string) ([]byte, error)
	SubmitFile(ctx context.Context, filename string, content io.Reader, purpose string) ([]byte, error)
}

var _ Analyzer = (*analysis.Client)(nil)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	analyzer    Analyzer
	store       session.Store
	engine      *export.Engine
	scheduler   modal.Scheduler
	pages       *cache.Cache
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port           int
	Analyzer       Analyzer
	Store          session.Store
	Engine         *export.Engine
	Scheduler      modal.Scheduler
	SessionTTL     time.Duration
	AllowedOrigins []string
	RateLimit      *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Analyzer == nil {
		return nil, fmt.Errorf("server requires an analyzer")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a session store")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.Engine == nil {
		cfg.Engine = export.NewEngine(export.NewLoader(export.FontLoader(nil, "")))
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		analyzer:    cfg.Analyzer,
		store:       cfg.Store,
		engine:      cfg.Engine,
		scheduler:   cfg.Scheduler,
		pages:       cache.New(cfg.SessionTTL, 2*cfg.SessionTTL),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Submission
	mux.HandleFunc("POST /api/analyze/url", s.handleAnalyzeURL)
	mux.HandleFunc("POST /api/analyze/text", s.handleAnalyzeText)
	mux.HandleFunc("POST /api/analyze/file", s.handleAnalyzeFile)

	// Results view
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("POST /api/results/modal", s.handleSelect)
	mux.HandleFunc("POST /api/results/modal/dismiss", s.handleDismiss)
	mux.HandleFunc("GET /api/results/modal/stream", s.handleModalStream)
	mux.HandleFunc("POST /api/results/menus", s.handleMenus)
	mux.HandleFunc("GET /api/results/export/{format}", s.handleExport)
	mux.HandleFunc("GET /api/results/share/{kind}", s.handleShare)

	// Credentials are only allowed for explicitly configured origins.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Remaining"},
		AllowCredentials: !slices.Contains(cfg.AllowedOrigins, "*"),
		MaxAge:           300,
	})

	s.handler = s.withRateLimit(s.withLogging(corsHandler.Handler(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // SSE streams and analysis submissions are long-lived
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		observability.Log.Infof("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	observability.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	observability.Log.Info("Server stopped")
	return nil
}

// handleHealth returns server health status and whether PDF export is warm
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"document_ready": s.engine.DocumentReady(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		observability.Log.WithError(err).Error("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the client IP from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
