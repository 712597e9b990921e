// Package executor runs the wrapped command-line tool and normalizes its
// outcome into a Result.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultBinary is the tool invoked when no binary is configured.
const DefaultBinary = "west"

// Executor runs argument vectors against one fixed binary. It holds no
// mutable state after construction and is safe for concurrent use; each
// Run spawns its own process.
type Executor struct {
	binary string
	dir    string
	env    []string
	logger zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithDir sets the working directory of the child process.
func WithDir(dir string) Option {
	return func(e *Executor) {
		e.dir = dir
	}
}

// WithEnv adds KEY=VALUE entries to the inherited environment.
func WithEnv(env map[string]string) Option {
	return func(e *Executor) {
		for k, v := range env {
			e.env = append(e.env, k+"="+v)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor for binary, or DefaultBinary if empty.
func New(binary string, opts ...Option) *Executor {
	if binary == "" {
		binary = DefaultBinary
	}
	e := &Executor{
		binary: binary,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Binary returns the configured binary.
func (e *Executor) Binary() string { return e.binary }

// Name returns the display name of the binary used in messages.
func (e *Executor) Name() string {
	return strings.TrimSuffix(filepath.Base(e.binary), ".exe")
}

// Run executes the binary with args, waits for it to exit and returns the
// classified Result. It never panics and never returns an error: every
// failure is reported in the Result. Run imposes no timeout; it returns
// early only if ctx is cancelled, which kills the child.
func (e *Executor) Run(ctx context.Context, args []string) (res Result) {
	id := ulid.Make().String()
	full := append([]string{e.binary}, args...)
	log := e.logger.With().
		Str("invocation", id).
		Strs("argv", full).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			res = Unexpected(fmt.Errorf("panic: %v", r))
			log.Error().Str("result", res.Message).Msg("Command aborted")
		}
	}()

	log.Info().Str("command", QuoteCommand(full)).Msg("Executing command")

	if e.dir != "" {
		if info, err := os.Stat(e.dir); err != nil {
			res = Unexpected(fmt.Errorf("working directory: %w", err))
			log.Error().Str("result", res.Message).Msg("Command not started")
			return res
		} else if !info.IsDir() {
			res = Unexpected(fmt.Errorf("working directory %s is not a directory", e.dir))
			log.Error().Str("result", res.Message).Msg("Command not started")
			return res
		}
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = e.dir
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res, failure := Classify(ctx, e.Name(), args, stdout.String(), stderr.String(), err)
	if res.Success {
		log.Info().Msg("Command successful")
		return res
	}

	ev := log.Error().
		Str("failure", failure.String()).
		Str("result", res.Message)
	if cmd.ProcessState != nil {
		ev = ev.Int("exit", cmd.ProcessState.ExitCode())
	}
	ev.Str("stdout", res.Stdout).
		Str("stderr", res.Stderr).
		Msg("Command failed")
	return res
}

// QuoteCommand renders argv as a bash command line for logs.
func QuoteCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(arg)
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}
