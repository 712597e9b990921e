// Package testutil starts west-mcp servers for the ginkgo suites.
package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/west-mcp/west-mcp/internal/catalog"
	"github.com/west-mcp/west-mcp/internal/executor"
	"github.com/west-mcp/west-mcp/internal/transport"
	"github.com/west-mcp/west-mcp/pkg/mcpserver/west"
)

// TestServer is a west-mcp server listening on a local port.
type TestServer struct {
	Server    *transport.Server
	BaseURL   string
	Workspace *Workspace
	Catalog   *catalog.Catalog
}

// TestServerOption configures TestServer
type TestServerOption func(*testServerConfig)

type testServerConfig struct {
	disabled []string
	logger   zerolog.Logger
}

// WithDisabledTools leaves the named tools out of the server.
func WithDisabledTools(names ...string) TestServerOption {
	return func(c *testServerConfig) {
		c.disabled = append(c.disabled, names...)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) TestServerOption {
	return func(c *testServerConfig) {
		c.logger = logger
	}
}

// StartTestServer creates a workspace and serves it over streamable HTTP.
func StartTestServer(opts ...TestServerOption) (*TestServer, error) {
	cfg := &testServerConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	ws, err := NewWorkspace()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err == nil {
		cat, err = cat.Without(cfg.disabled...)
	}
	if err != nil {
		ws.Cleanup()
		return nil, err
	}

	exec := executor.New(ws.Binary,
		executor.WithDir(ws.Root),
		executor.WithEnv(map[string]string{"WEST_E2E_LOG": ws.Log}),
		executor.WithLogger(cfg.logger),
	)
	mcpServer := west.NewServer(west.NewHandler(cat, exec, cfg.logger), "e2e")

	port, err := findAvailablePort()
	if err != nil {
		ws.Cleanup()
		return nil, fmt.Errorf("failed to find available port: %w", err)
	}

	serverConfig := transport.DefaultConfig()
	serverConfig.Mode = transport.ModeHTTP
	serverConfig.Address = fmt.Sprintf("127.0.0.1:%d", port)

	srv, err := transport.New(serverConfig, mcpServer, cfg.logger)
	if err != nil {
		ws.Cleanup()
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	baseURL := "http://" + serverConfig.Address
	if err := waitForServer(baseURL, 10*time.Second); err != nil {
		srv.Shutdown(context.Background())
		ws.Cleanup()
		return nil, fmt.Errorf("server failed to start: %w", err)
	}

	return &TestServer{
		Server:    srv,
		BaseURL:   baseURL,
		Workspace: ws,
		Catalog:   cat,
	}, nil
}

// MCPEndpoint returns the streamable HTTP endpoint.
func (s *TestServer) MCPEndpoint() string {
	return s.BaseURL + transport.PathMCP
}

// Stop shuts the server down and removes its workspace.
func (s *TestServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Server.Shutdown(ctx)
	s.Workspace.Cleanup()
}

func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

func waitForServer(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + transport.PathHealth)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
