package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// MessageSuccess is the message of every successful Result.
const MessageSuccess = "Command executed successfully."

// stderr markers the wrapped tool prints when it rejects a subcommand.
var rejectionMarkers = []string{"unknown command", "invalid choice"}

// Result is the normalized outcome of one invocation. Success is true if and
// only if the process exited with status zero.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// Failure is the class of a failed Result.
type Failure int

const (
	FailureNone Failure = iota
	FailureInvalidInput
	FailureUnknownSubcommand
	FailureExitCode
	FailureNotFound
	FailureUnexpected
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid_input"
	case FailureUnknownSubcommand:
		return "unknown_subcommand"
	case FailureExitCode:
		return "exit_code"
	case FailureNotFound:
		return "not_found"
	case FailureUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("Failure(%d)", int(f))
}

// InvalidInput converts a validation error into a Result. No process was
// started, so both streams are empty.
func InvalidInput(err error) Result {
	return Result{Success: false, Message: err.Error()}
}

// Unexpected reports a failure outside the other classes.
func Unexpected(err error) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
		Stderr:  err.Error(),
	}
}

// NotFound reports that the binary could not be located or launched.
func NotFound(name string, err error) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("'%s' command not found. Please ensure %s is installed and in your system's PATH.", name, name),
		Stderr:  err.Error(),
	}
}

// Classify builds the Result for a finished (or failed to start) process.
// name is the display name of the binary, args the vector without it.
func Classify(ctx context.Context, name string, args []string, stdout, stderr string, err error) (Result, Failure) {
	if err == nil {
		return Result{Success: true, Message: MessageSuccess, Stdout: stdout, Stderr: stderr}, FailureNone
	}

	cancelled := ctx != nil && ctx.Err() != nil

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when a signal ended the process, which is how
		// cancellation kills it. A child that exited on its own keeps its code.
		if cancelled && exitErr.ExitCode() == -1 {
			return Unexpected(ctx.Err()), FailureUnexpected
		}
		res := Result{Success: false, Stdout: stdout, Stderr: stderr}
		if isRejection(stderr) {
			sub := ""
			if len(args) > 0 {
				sub = args[0]
			}
			res.Message = fmt.Sprintf("%s subcommand '%s' not found or invalid.", name, sub)
			return res, FailureUnknownSubcommand
		}
		res.Message = fmt.Sprintf("Command failed with exit code %d.", exitErr.ExitCode())
		return res, FailureExitCode
	}

	if cancelled {
		return Unexpected(ctx.Err()), FailureUnexpected
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return NotFound(name, err), FailureNotFound
	}

	return Unexpected(err), FailureUnexpected
}

func isRejection(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, m := range rejectionMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
