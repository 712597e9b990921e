// Package config loads west-mcp settings.
//
// # Configuration Loading
//
// Load merges settings from these sources, later ones winning:
//
//  1. Global config (~/.config/west-mcp/west-mcp.jsonc, XDG compatible)
//  2. Project config (west-mcp.json / west-mcp.jsonc in the working directory)
//  3. WEST_MCP_CONFIG file
//  4. Environment variables, with a .env file in the working directory
//     supplying values for variables that are not already set
//
// Command-line flags are applied on top by the caller.
//
// Config files are JSON or JSONC (comments are stripped with tidwall/jsonc)
// and support {env:VAR} placeholders.
//
// # Environment Variables
//
//   - WEST_MCP_BINARY - Path or name of the west executable
//   - WEST_MCP_WORKDIR - Working directory for west invocations
//   - WEST_MCP_LOG_LEVEL - DEBUG, INFO, WARN or ERROR
//   - WEST_MCP_TRANSPORT - stdio, sse or http
//   - WEST_MCP_ADDRESS - Listen address for the sse and http transports
//   - WEST_MCP_CONFIG - Path to a specific config file
//
// Files are read through an afero.Fs so tests can run against memory.
package config
