// Package gitinfo reads version facts from the repository's git state: the
// tag at HEAD, the current branch, the last reachable tag, and the next
// version derived from it. Failures are soft: docs built outside a git
// checkout simply get empty values.
package gitinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"repoctl/internal/tooling"
)

// Info collects the git-derived version facts for the docs macros.
type Info struct {
	// Tag is the tag pointing at HEAD, empty when HEAD is untagged.
	Tag string `json:"git_tag"`

	// Branch is the current branch, empty in detached HEAD state.
	Branch string `json:"git_branch"`

	// RefName is the name the docs are being built for: the GIT_REF_NAME
	// environment value when set, else Tag, else Branch.
	RefName string `json:"git_ref_name"`

	// LastTag is the most recent tag reachable from HEAD^.
	LastTag string `json:"git_tag_last"`

	// LastVersion is LastTag without its leading "v".
	LastVersion string `json:"version_last"`

	// NextVersion is the version line after LastTag: 0.Y bumps the minor,
	// anything from 1 on bumps the major. Empty when LastTag is unusable.
	NextVersion string `json:"version_next"`
}

// Reader queries git through the tool runner.
type Reader struct {
	runner *tooling.Runner
	logger *zap.Logger
	dir    string
}

// NewReader creates a Reader operating in dir ("" for the current one).
func NewReader(runner *tooling.Runner, logger *zap.Logger, dir string) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{runner: runner, logger: logger, dir: dir}
}

// Read gathers all facts. refNameEnv is the value of GIT_REF_NAME (empty
// when unset).
func (r *Reader) Read(ctx context.Context, refNameEnv string) Info {
	info := Info{
		Tag:     r.git(ctx, "tag", "--points-at", "HEAD"),
		Branch:  r.git(ctx, "branch", "--show-current"),
		LastTag: r.git(ctx, "describe", "--abbrev=0", "--tags", "HEAD^"),
	}

	info.RefName = refNameEnv
	if info.RefName == "" {
		info.RefName = info.Tag
	}
	if info.RefName == "" {
		info.RefName = info.Branch
	}

	if info.LastTag != "" {
		info.LastVersion = StripV(info.LastTag)
		next, err := NextVersion(info.LastTag)
		if err != nil {
			r.logger.Warn("cannot derive next version",
				zap.String("last_tag", info.LastTag), zap.Error(err))
		} else {
			info.NextVersion = next
		}
	}
	return info
}

// git runs one git command and returns its trimmed output, or "" when the
// command fails or prints nothing.
func (r *Reader) git(ctx context.Context, args ...string) string {
	result, err := r.runner.Run(ctx, tooling.Command{
		Binary: "git",
		Args:   args,
		Dir:    r.dir,
	})
	if err != nil {
		r.logger.Warn("git not available", zap.Strings("args", args), zap.Error(err))
		return ""
	}
	if result.ExitCode != 0 {
		r.logger.Warn("git command failed",
			zap.Strings("args", args),
			zap.Int("exit_code", result.ExitCode),
			zap.String("stderr", strings.TrimSpace(result.Stderr)))
		return ""
	}
	return strings.TrimSpace(result.Stdout)
}

// StripV removes a leading "v" from a version label.
func StripV(version string) string {
	return strings.TrimPrefix(version, "v")
}

// NextVersion computes the next release line after a tag: while the major
// is 0 the minor is bumped ("v0.6.2" -> "0.7"), from 1.0 on the major is
// ("v2.1.0" -> "3").
func NextVersion(tag string) (string, error) {
	// Tags must carry all three version parts; a bare "v1.2" is not a
	// release tag.
	parts := strings.SplitN(StripV(tag), ".", 3)
	if len(parts) < 3 {
		return "", fmt.Errorf("tag %q is not in major.minor.patch form", tag)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("tag %q: bad major: %w", tag, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("tag %q: bad minor: %w", tag, err)
	}
	if major == 0 {
		return fmt.Sprintf("%d.%d", major, minor+1), nil
	}
	return strconv.Itoa(major + 1), nil
}
