// Package transport serves an MCP server over HTTP.
//
// Two network transports are supported: the legacy SSE transport on /sse and
// /message, and the streamable HTTP transport on /mcp. Both share a chi router
// that also answers /healthz.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Modes.
const (
	ModeSSE  = "sse"
	ModeHTTP = "http"
)

// Endpoint paths.
const (
	PathHealth  = "/healthz"
	PathSSE     = "/sse"
	PathMessage = "/message"
	PathMCP     = "/mcp"
)

// Config holds HTTP server configuration.
type Config struct {
	Mode    string
	Address string
	// BaseURL is advertised to SSE clients for posting messages. Defaults
	// to http://<Address>.
	BaseURL     string
	EnableCORS  bool
	ReadTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeHTTP,
		Address:     "127.0.0.1:8080",
		EnableCORS:  true,
		ReadTimeout: 30 * time.Second,
	}
}

// Server is the HTTP front of an MCP server.
type Server struct {
	config  Config
	router  *chi.Mux
	httpSrv *http.Server
	logger  zerolog.Logger
}

// New creates a Server for mcpServer.
func New(cfg Config, mcpServer *server.MCPServer, logger zerolog.Logger) (*Server, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://" + cfg.Address
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
	}
	s.setupMiddleware()

	s.router.Get(PathHealth, s.health)

	switch cfg.Mode {
	case ModeSSE:
		sse := server.NewSSEServer(mcpServer,
			server.WithBaseURL(cfg.BaseURL),
			server.WithSSEEndpoint(PathSSE),
			server.WithMessageEndpoint(PathMessage),
		)
		s.router.Handle(PathSSE, sse)
		s.router.Handle(PathMessage, sse)
	case ModeHTTP:
		s.router.Handle(PathMCP, server.NewStreamableHTTPServer(mcpServer,
			server.WithEndpointPath(PathMCP),
		))
	default:
		return nil, fmt.Errorf("unsupported transport mode %q", cfg.Mode)
	}

	return s, nil
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	if s.config.EnableCORS {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}
}

// requestLogger logs one entry per request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"transport": s.config.Mode,
	})
}

// Start listens on the configured address. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:        s.config.Address,
		Handler:     s.router,
		ReadTimeout: s.config.ReadTimeout,
	}

	s.logger.Info().
		Str("transport", s.config.Mode).
		Str("address", s.config.Address).
		Msg("Listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
