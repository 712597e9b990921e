package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FakeWestScript stands in for west. Every invocation appends its arguments,
// one per line followed by "--end--", to $WEST_E2E_LOG. Magic subcommands:
//
//	--help   print a help listing with both command sections
//	topdir   print the working directory
//	fail     exit 2 with an error on stderr
//
// Unknown commands listed in the script are rejected the way west's argparse
// does; everything else echoes its arguments.
const FakeWestScript = `#!/bin/sh
for a in "$@"; do printf '%s\n' "$a" >> "$WEST_E2E_LOG"; done
echo "--end--" >> "$WEST_E2E_LOG"

case "$1" in
  --help)
    cat <<'HELP'
usage: west [-h] [-z ZEPHYR_BASE] [-v] [-V] <command> ...

The Zephyr RTOS meta-tool.

Built-in commands:
  init:                 create a west workspace
  update:               update projects described in west manifest
  list:                 print information about projects
  manifest:             manage the west manifest
  topdir:               print the top level directory of the workspace

Extension Commands:
  build:                compile a Zephyr application
  flash:                flash and run a binary on a board
  blobs:                work with binary blobs

Run "west <command> -h" for detailed help on each command.
HELP
    exit 0 ;;
  topdir) pwd; exit 0 ;;
  fail) echo "FATAL ERROR: build failed" >&2; exit 2 ;;
  bogus) echo "west: error: argument <command>: invalid choice: 'bogus'" >&2; exit 2 ;;
esac
for a in "$@"; do printf '%s\n' "$a"; done
`

// Workspace is a throwaway west workspace with a fake west binary.
type Workspace struct {
	Root   string
	Binary string
	Log    string
}

// NewWorkspace creates a workspace under a new temp directory.
func NewWorkspace() (*Workspace, error) {
	if runtime.GOOS == "windows" {
		return nil, fmt.Errorf("fake west requires a POSIX shell")
	}
	root, err := os.MkdirTemp("", "west-mcp-e2e-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Root:   root,
		Binary: filepath.Join(root, "bin", "west"),
		Log:    filepath.Join(root, "invocations.log"),
	}
	if err := os.MkdirAll(filepath.Dir(ws.Binary), 0o755); err != nil {
		ws.Cleanup()
		return nil, err
	}
	if err := os.WriteFile(ws.Binary, []byte(FakeWestScript), 0o755); err != nil {
		ws.Cleanup()
		return nil, err
	}
	return ws, nil
}

// Invocations returns the argument vectors west was run with, oldest first.
func (w *Workspace) Invocations() ([][]string, error) {
	data, err := os.ReadFile(w.Log)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out [][]string
	current := []string{}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "--end--" {
			out = append(out, current)
			current = []string{}
			continue
		}
		current = append(current, line)
	}
	return out, nil
}

// Reset forgets recorded invocations.
func (w *Workspace) Reset() error {
	err := os.Remove(w.Log)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Cleanup removes the workspace.
func (w *Workspace) Cleanup() {
	os.RemoveAll(w.Root)
}
