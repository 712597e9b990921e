// Package west exposes catalog operations as MCP tools backed by the west
// command-line tool.
package west

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/west-mcp/west-mcp/internal/argv"
	"github.com/west-mcp/west-mcp/internal/catalog"
	"github.com/west-mcp/west-mcp/internal/executor"
	"github.com/west-mcp/west-mcp/internal/inventory"
)

// ServerName is announced to MCP clients during initialization.
const ServerName = "west-mcp"

// Messages of the inventory operation.
const (
	MessageInventoryFailed = "Failed to retrieve west help output."
	MessageInventoryListed = "Successfully listed west commands."
)

// InventoryResult is returned by inventory operations.
type InventoryResult struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Commands inventory.Inventory `json:"commands"`
	Stdout   string              `json:"stdout"`
	Stderr   string              `json:"stderr"`
}

// Handler turns tool calls into west invocations.
type Handler struct {
	catalog *catalog.Catalog
	exec    *executor.Executor
	parser  *inventory.Parser
	logger  zerolog.Logger
}

// NewHandler creates a Handler serving the operations in cat.
func NewHandler(cat *catalog.Catalog, exec *executor.Executor, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog: cat,
		exec:    exec,
		parser:  inventory.NewParser(),
		logger:  logger,
	}
}

// Catalog returns the served operations.
func (h *Handler) Catalog() *catalog.Catalog { return h.catalog }

// Call runs the named operation. The only error is an unknown name; every
// other failure is reported in the returned result.
func (h *Handler) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	op, ok := h.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return h.Invoke(ctx, op, args), nil
}

// Invoke builds and runs op. It returns an executor.Result, or an
// InventoryResult for inventory operations.
func (h *Handler) Invoke(ctx context.Context, op *argv.Operation, args map[string]any) any {
	var res executor.Result
	vec, err := h.build(op, args)
	launched := err == nil
	if launched {
		res = h.exec.Run(ctx, vec)
	} else {
		h.logger.Warn().Err(err).Str("tool", op.Name).Msg("Rejected invocation")
		res = executor.InvalidInput(err)
	}

	if op.ResultKind() == argv.ResultInventory {
		return h.inventory(res, launched)
	}
	return res
}

func (h *Handler) build(op *argv.Operation, args map[string]any) ([]string, error) {
	inv, err := argv.FromArguments(op, args)
	if err != nil {
		return nil, err
	}
	return argv.Build(op, inv)
}

// inventory wraps res for an inventory operation. A rejection that never
// reached west keeps its own message.
func (h *Handler) inventory(res executor.Result, launched bool) InventoryResult {
	out := InventoryResult{
		Success:  res.Success,
		Message:  MessageInventoryListed,
		Commands: inventory.Inventory{BuiltIn: []string{}, Extension: []string{}},
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
	if !launched {
		out.Message = res.Message
		return out
	}
	if !res.Success {
		out.Message = MessageInventoryFailed
		return out
	}
	out.Commands = h.parser.Parse(res.Stdout)
	h.logger.Debug().
		Int("built_in", len(out.Commands.BuiltIn)).
		Int("extension", len(out.Commands.Extension)).
		Msg("Parsed command inventory")
	return out
}

// NewServer creates an MCP server with one tool per catalog operation.
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, op := range h.catalog.Operations() {
		s.AddTool(NewTool(op), h.toolHandler(op))
	}
	return s
}

func (h *Handler) toolHandler(op *argv.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(h.Invoke(ctx, op, request.GetArguments()))
	}
}

// toolResult returns out as structured content with a JSON text fallback.
func toolResult(out any) (*mcp.CallToolResult, error) {
	text, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultStructured(out, string(text)), nil
}

// NewTool derives the MCP tool definition, including its input schema,
// from op.
func NewTool(op *argv.Operation) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
	for _, p := range op.Params {
		var props []mcp.PropertyOption
		if p.Description != "" {
			props = append(props, mcp.Description(p.Description))
		}
		if p.Required {
			props = append(props, mcp.Required())
		}

		switch {
		case p.Kind == argv.KindFlag:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case p.Kind.IsList():
			props = append(props, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			if len(p.Choices) > 0 {
				props = append(props, mcp.Enum(p.Choices...))
			}
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(op.Name, opts...)
}
