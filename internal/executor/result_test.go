package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

// exitError returns a real *exec.ExitError with the given status.
func exitError(t *testing.T, code int) error {
	t.Helper()
	skipWithoutShell(t)
	err := exec.Command("/bin/sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	return err
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		args    []string
		stdout  string
		stderr  string
		err     func(t *testing.T) error
		success bool
		failure Failure
		message string
	}{
		{
			name:    "success",
			args:    []string{"boards"},
			stdout:  "nrf52840dk\n",
			stderr:  "warning\n",
			err:     func(*testing.T) error { return nil },
			success: true,
			failure: FailureNone,
			message: MessageSuccess,
		},
		{
			name:    "invalid choice",
			args:    []string{"frobnicate", "-x"},
			stderr:  "west: error: argument <command>: invalid choice: 'frobnicate'",
			err:     func(t *testing.T) error { return exitError(t, 2) },
			failure: FailureUnknownSubcommand,
			message: "west subcommand 'frobnicate' not found or invalid.",
		},
		{
			name:    "invalid choice upper case",
			args:    []string{"frob"},
			stderr:  "ERROR: INVALID CHOICE",
			err:     func(t *testing.T) error { return exitError(t, 1) },
			failure: FailureUnknownSubcommand,
			message: "west subcommand 'frob' not found or invalid.",
		},
		{
			name:    "unknown command",
			args:    []string{"nope"},
			stderr:  "Unknown command 'nope'",
			err:     func(t *testing.T) error { return exitError(t, 1) },
			failure: FailureUnknownSubcommand,
			message: "west subcommand 'nope' not found or invalid.",
		},
		{
			name:    "rejection with empty vector",
			stderr:  "unknown command",
			err:     func(t *testing.T) error { return exitError(t, 1) },
			failure: FailureUnknownSubcommand,
			message: "west subcommand '' not found or invalid.",
		},
		{
			name:    "generic failure",
			args:    []string{"build"},
			stdout:  "partial",
			stderr:  "ninja: build stopped",
			err:     func(t *testing.T) error { return exitError(t, 3) },
			failure: FailureExitCode,
			message: "Command failed with exit code 3.",
		},
		{
			name:    "binary not on path",
			args:    []string{"boards"},
			err:     func(*testing.T) error { return &exec.Error{Name: "west", Err: exec.ErrNotFound} },
			failure: FailureNotFound,
			message: "'west' command not found. Please ensure west is installed and in your system's PATH.",
		},
		{
			name:    "binary path missing",
			err:     func(*testing.T) error { return &fs.PathError{Op: "fork/exec", Path: "/opt/west", Err: fs.ErrNotExist} },
			failure: FailureNotFound,
			message: "'west' command not found. Please ensure west is installed and in your system's PATH.",
		},
		{
			name:    "anything else",
			err:     func(*testing.T) error { return errors.New("pipe broke") },
			failure: FailureUnexpected,
			message: "An unexpected error occurred: pipe broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err(t)
			res, failure := Classify(ctx, "west", tt.args, tt.stdout, tt.stderr, err)

			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.failure, failure)
			assert.Equal(t, tt.message, res.Message)

			switch failure {
			case FailureNone, FailureUnknownSubcommand, FailureExitCode:
				assert.Equal(t, tt.stdout, res.Stdout)
				assert.Equal(t, tt.stderr, res.Stderr)
			default:
				assert.Empty(t, res.Stdout)
				assert.Equal(t, err.Error(), res.Stderr)
			}
		})
	}
}

// signalError returns a real *exec.ExitError for a process killed by a signal.
func signalError(t *testing.T) error {
	t.Helper()
	skipWithoutShell(t)
	err := exec.Command("/bin/sh", "-c", "kill -9 $$").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != -1 {
		t.Fatalf("expected a signalled ExitError, got %v", err)
	}
	return err
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("killed by cancellation", func(t *testing.T) {
		res, failure := Classify(ctx, "west", []string{"build"}, "out", "err", signalError(t))
		assert.False(t, res.Success)
		assert.Equal(t, FailureUnexpected, failure)
		assert.Equal(t, "An unexpected error occurred: context canceled", res.Message)
		assert.Empty(t, res.Stdout)
	})

	t.Run("exited on its own", func(t *testing.T) {
		res, failure := Classify(ctx, "west", []string{"build"}, "out", "err", exitError(t, 1))
		assert.False(t, res.Success)
		assert.Equal(t, FailureExitCode, failure)
		assert.Equal(t, "Command failed with exit code 1.", res.Message)
		assert.Equal(t, "out", res.Stdout)
		assert.Equal(t, "err", res.Stderr)
	})

	t.Run("never started", func(t *testing.T) {
		res, failure := Classify(ctx, "west", []string{"build"}, "", "", context.Canceled)
		assert.Equal(t, FailureUnexpected, failure)
		assert.Equal(t, "An unexpected error occurred: context canceled", res.Message)
	})
}

func TestInvalidInput(t *testing.T) {
	res := InvalidInput(errors.New("Invalid shell. Must be one of: bash, zsh."))
	assert.Equal(t, Result{Success: false, Message: "Invalid shell. Must be one of: bash, zsh."}, res)
}

func TestFailure_String(t *testing.T) {
	assert.Equal(t, "unknown_subcommand", FailureUnknownSubcommand.String())
	assert.Equal(t, "Failure(42)", Failure(42).String())
}
