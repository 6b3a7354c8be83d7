// Package tooling runs the external developer tools that repoctl orchestrates
// (git, protoc, linters, formatters). It is the only place in the codebase
// that spawns processes; everything above it works with captured results.
package tooling

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Command describes one external tool invocation.
type Command struct {
	// Binary is the executable to run (e.g. "git", "protoc", "gofmt").
	Binary string

	// Args are the command-line arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env entries (KEY=VALUE) appended to the parent environment.
	Env []string

	// Stdin is fed to the tool's standard input when non-empty.
	Stdin string

	// Timeout overrides the runner's default timeout when positive.
	Timeout time.Duration
}

// String returns the command line for display and logging.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// Result captures a finished tool run. A non-zero exit code is data, not an
// error: callers like the example linter treat tool diagnostics as output.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// OutputLines splits the combined stdout and stderr into non-empty lines.
func (r *Result) OutputLines() []string {
	var lines []string
	for _, chunk := range []string{r.Stdout, r.Stderr} {
		for _, line := range strings.Split(chunk, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// Runner executes commands with a default timeout and a cap on captured
// output. The zero value is not usable; construct with NewRunner.
type Runner struct {
	logger         *zap.Logger
	defaultTimeout time.Duration
	maxOutputBytes int64

	// stream mirrors tool output to the given writer while capturing it.
	// Used by session runs so long test output is visible as it happens.
	stream io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the default per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.defaultTimeout = d }
}

// WithStream mirrors command output to w while it is captured.
func WithStream(w io.Writer) Option {
	return func(r *Runner) { r.stream = w }
}

// WithMaxOutput caps captured output at n bytes per stream.
func WithMaxOutput(n int64) Option {
	return func(r *Runner) { r.maxOutputBytes = n }
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		logger:         logger,
		defaultTimeout: 5 * time.Minute,
		maxOutputBytes: 4 << 20,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrNotFound reports that the requested binary is not installed.
var ErrNotFound = errors.New("tool not found")

// Run executes cmd and returns the captured result. The returned error is
// non-nil only when the tool could not run at all (missing binary, timeout,
// canceled context); tool failures are reported through Result.ExitCode.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("empty binary in command")
	}

	timeout := r.defaultTimeout
	if cmd.Timeout > 0 {
		timeout = cmd.Timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	id := uuid.NewString()
	r.logger.Debug("running tool",
		zap.String("request_id", id),
		zap.String("command", cmd.String()),
		zap.String("dir", cmd.Dir),
		zap.Duration("timeout", timeout))

	execCmd := exec.CommandContext(runCtx, cmd.Binary, cmd.Args...)
	execCmd.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		execCmd.Stdin = strings.NewReader(cmd.Stdin)
	}

	var stdout, stderr cappedBuffer
	stdout.limit = r.maxOutputBytes
	stderr.limit = r.maxOutputBytes
	if r.stream != nil {
		// exec copies stdout and stderr from separate goroutines, so the
		// shared mirror writer must serialize their writes.
		mirror := &lockedWriter{w: r.stream}
		execCmd.Stdout = io.MultiWriter(&stdout, mirror)
		execCmd.Stderr = io.MultiWriter(&stderr, mirror)
	} else {
		execCmd.Stdout = &stdout
		execCmd.Stderr = &stderr
	}

	start := time.Now()
	err := execCmd.Run()
	result := &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	switch {
	case err == nil:
	case runCtx.Err() != nil:
		// Timeout or cancellation wins over the generic "signal: killed".
		return nil, fmt.Errorf("%s: %w", cmd.Binary, runCtx.Err())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", cmd.Binary, ErrNotFound)
		} else {
			return nil, fmt.Errorf("%s: %w", cmd.Binary, err)
		}
	}

	r.logger.Debug("tool finished",
		zap.String("request_id", id),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// cappedBuffer keeps at most limit bytes and silently drops the rest, so a
// runaway tool cannot exhaust memory.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - int64(b.buf.Len())
	if remaining <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if int64(len(p)) > remaining {
		b.truncated = true
		b.buf.Write(p[:remaining])
		// Report the full length so MultiWriter does not error out.
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[output truncated]"
	}
	return b.buf.String()
}
