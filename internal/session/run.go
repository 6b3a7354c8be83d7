package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"repoctl/internal/tooling"
)

// Runner executes sessions through the shared tool runner.
type Runner struct {
	tools  *tooling.Runner
	logger *zap.Logger
}

// NewRunner creates a session runner.
func NewRunner(tools *tooling.Runner, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{tools: tools, logger: logger}
}

// Run executes the selected sessions in order (all when names is empty).
// A failing command stops its session but not the run; the aggregate error
// names every failed session.
func (r *Runner) Run(ctx context.Context, cfg Config, names []string) error {
	sessions, err := r.pick(cfg, names)
	if err != nil {
		return err
	}

	var failed []string
	for _, s := range sessions {
		if err := r.runOne(ctx, s); err != nil {
			r.logger.Error("session failed", zap.String("session", s.Name), zap.Error(err))
			failed = append(failed, s.Name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("sessions failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

// RunParallel executes the selected sessions concurrently. Sessions are
// independent of each other by construction, so order does not matter; the
// first error cancels the rest.
func (r *Runner) RunParallel(ctx context.Context, cfg Config, names []string) error {
	sessions, err := r.pick(cfg, names)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sessions {
		s := s
		g.Go(func() error {
			if err := r.runOne(gctx, s); err != nil {
				return fmt.Errorf("session %s: %w", s.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Runner) pick(cfg Config, names []string) ([]Session, error) {
	if len(names) == 0 {
		return cfg.Sessions, nil
	}
	var sessions []Session
	for _, name := range names {
		s, ok := cfg.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown session %q", name)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *Runner) runOne(ctx context.Context, s Session) error {
	r.logger.Info("running session", zap.String("session", s.Name))
	for _, argv := range s.Commands {
		if len(argv) == 0 {
			return fmt.Errorf("empty command in session %s", s.Name)
		}
		result, err := r.tools.Run(ctx, tooling.Command{
			Binary: argv[0],
			Args:   argv[1:],
		})
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return fmt.Errorf("%s exited with code %d", strings.Join(argv, " "), result.ExitCode)
		}
		// gofmt -l signals problems through output, not the exit code.
		if argv[0] == "gofmt" && strings.TrimSpace(result.Stdout) != "" {
			return fmt.Errorf("files need formatting:\n%s", strings.TrimSpace(result.Stdout))
		}
	}
	return nil
}
