package west

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/west-mcp/west-mcp/internal/executor"
)

// TestServer_MCPClient drives the server over stdio pipes with the
// modelcontextprotocol go-sdk client.
func TestServer_MCPClient(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mcpServer := newTestServer(t, writeFakeWest(t))
	stdioServer := server.NewStdioServer(mcpServer)

	serverReader, clientWriter := io.Pipe()
	clientReader, serverWriter := io.Pipe()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- stdioServer.Listen(ctx, serverReader, serverWriter)
	}()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.IOTransport{
		Reader: clientReader,
		Writer: clientWriter,
	}, nil)
	require.NoError(t, err, "failed to connect client to server")
	defer session.Close()

	listResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range listResult.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"build_zephyr_project", "manage_blobs", "list_west_commands", "run_arbitrary_west_command"} {
		assert.True(t, names[want], "%s should be listed", want)
	}

	call := func(name string, args map[string]any) string {
		t.Helper()
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
		require.NoError(t, err, "failed to call %s", name)
		require.False(t, result.IsError)
		require.NotEmpty(t, result.Content)
		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		return text.Text
	}

	t.Run("build", func(t *testing.T) {
		var res executor.Result
		require.NoError(t, json.Unmarshal([]byte(call("build_zephyr_project", map[string]any{
			"source_dir": "app",
			"board":      "board_x",
			"force":      true,
			"target":     "usage",
		})), &res))
		assert.True(t, res.Success)
		assert.Equal(t, []string{"build", "-b", "board_x", "-f", "-t", "usage", "app"}, lines(res.Stdout))
	})

	t.Run("blobs format only for list", func(t *testing.T) {
		var res executor.Result
		require.NoError(t, json.Unmarshal([]byte(call("manage_blobs", map[string]any{
			"subcommand":    "fetch",
			"format_string": "{path}",
			"auto_accept":   true,
			"module":        []string{"hal_nordic"},
		})), &res))
		assert.True(t, res.Success)
		assert.Equal(t, []string{"blobs", "fetch", "--module", "hal_nordic", "-a"}, lines(res.Stdout))
	})

	t.Run("invalid blobs subcommand", func(t *testing.T) {
		var res executor.Result
		require.NoError(t, json.Unmarshal([]byte(call("manage_blobs", map[string]any{
			"subcommand": "delete",
		})), &res))
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid 'blobs' subcommand. Must be one of: list, fetch, clean.", res.Message)
	})

	t.Run("inventory", func(t *testing.T) {
		var out InventoryResult
		require.NoError(t, json.Unmarshal([]byte(call("list_west_commands", nil)), &out))
		assert.True(t, out.Success)
		assert.Equal(t, []string{"init", "update", "list"}, out.Commands.BuiltIn)
		assert.Equal(t, []string{"build", "flash"}, out.Commands.Extension)
	})

	cancel()
	clientWriter.Close()
	serverWriter.Close()
}
