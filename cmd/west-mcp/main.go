// Package main provides the entry point for the west-mcp server.
package main

import (
	"fmt"
	"os"

	"github.com/west-mcp/west-mcp/cmd/west-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
