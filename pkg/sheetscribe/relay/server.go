// Package relay forwards prompts from a browser-hosted client to the model API.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/sheetscribe-go/internal/logging"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/llm"
)

// Defaults for the relay listener.
const (
	DefaultAddr          = ":3001"
	DefaultAllowedOrigin = "https://localhost:3000"
	shutdownTimeout      = 5 * time.Second
	maxRequestBytes      = 1 << 20
)

// Config controls the relay.
type Config struct {
	Addr          string
	AllowedOrigin string
	CertFile      string
	KeyFile       string
	// Upstream configures the model client created for each request.
	Upstream llm.Options
}

// CallerFactory builds a model caller bound to one request's API key.
type CallerFactory func(apiKey string) llm.Caller

// Server is the relay HTTP server.
type Server struct {
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics
	gatherer  prometheus.Gatherer
	newCaller CallerFactory
}

// Option customizes a Server.
type Option func(*Server)

// WithCallerFactory replaces how upstream callers are built.
func WithCallerFactory(f CallerFactory) Option {
	return func(s *Server) {
		s.newCaller = f
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a relay server registering its metrics on reg.
func New(cfg Config, reg *prometheus.Registry, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = DefaultAllowedOrigin
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logging.NewNop(),
		metrics:  newMetrics(reg),
		gatherer: reg,
	}
	s.newCaller = func(apiKey string) llm.Caller {
		return llm.NewClient(apiKey, s.cfg.Upstream)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the relay routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Post("/api/claude", s.handlePrompt)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
// TLS is used when both a certificate and key file are configured.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		if s.cfg.CertFile != "" && s.cfg.KeyFile != "" {
			s.logger.Info("relay listening", "addr", srv.Addr, "tls", true)
			serverErrors <- srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
			return
		}
		s.logger.Info("relay listening", "addr", srv.Addr, "tls", false)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown incomplete", "error", err)
			return srv.Close()
		}
		s.logger.Info("relay stopped")
		return nil
	}
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var body llm.RelayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		s.logger.Warn("invalid relay request body", "error", err)
		s.fail(w, http.StatusBadRequest, "Invalid request body", started)
		return
	}
	if body.APIKey == "" {
		s.fail(w, http.StatusBadRequest, "API key is required", started)
		return
	}

	content, err := s.newCaller(body.APIKey).Call(r.Context(), body.Prompt)
	if err != nil {
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			s.logger.Warn("upstream rejected prompt", "status", upstream.StatusCode, "type", upstream.Type)
			writeJSON(w, upstream.StatusCode, errorResponse{Error: upstream.RawError()})
			s.metrics.observe(upstream.StatusCode, started)
			return
		}
		s.logger.Error("relay call failed", "error", err)
		s.fail(w, http.StatusInternalServerError, "Internal server error", started)
		return
	}

	writeJSON(w, http.StatusOK, llm.RelayResponse{Content: content})
	s.metrics.observe(http.StatusOK, started)
}

func (s *Server) fail(w http.ResponseWriter, status int, message string, started time.Time) {
	raw, _ := json.Marshal(llm.ErrorBody{Message: message})
	writeJSON(w, status, errorResponse{Error: raw})
	s.metrics.observe(status, started)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("relay response encode failed", "error", err)
	}
}
