package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/west-mcp/west-mcp/internal/config"
	"github.com/west-mcp/west-mcp/internal/transport"
	"github.com/west-mcp/west-mcp/pkg/mcpserver/west"
)

var (
	serveTransport string
	serveAddress   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve west tools to MCP clients",
	Long: `Start the MCP server.

The default stdio transport is what MCP clients launch as a subprocess.
Logs always go to stderr so stdout stays reserved for the protocol.

Examples:
  west-mcp serve
  west-mcp serve --transport http --address 127.0.0.1:8080
  west-mcp serve --transport sse --workdir ~/zephyrproject`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", config.TransportStdio, "Transport (stdio|sse|http)")
	serveCmd.Flags().StringVar(&serveAddress, "address", "127.0.0.1:8080", "Listen address for sse and http")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.log.Logger
	mcpServer := west.NewServer(a.handler, Version)

	log.Info().
		Str("version", Version).
		Str("transport", a.config.Transport).
		Int("tools", a.handler.Catalog().Len()).
		Msg("Starting west-mcp server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.config.Transport == config.TransportStdio {
		stdio := server.NewStdioServer(mcpServer)
		err := stdio.Listen(ctx, os.Stdin, os.Stdout)
		if err != nil && ctx.Err() == nil {
			return err
		}
		log.Info().Msg("Server stopped")
		return nil
	}

	cfg := transport.DefaultConfig()
	cfg.Mode = a.config.Transport
	cfg.Address = a.config.Address
	srv, err := transport.New(cfg, mcpServer, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server stopped")
	return nil
}
