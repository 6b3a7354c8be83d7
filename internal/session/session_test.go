package session

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"repoctl/internal/config"
	"repoctl/internal/tooling"
)

func sessionNames(c Config) []string {
	names := make([]string, len(c.Sessions))
	for i, s := range c.Sessions {
		names[i] = s.Name
	}
	return names
}

func TestResolve_LibDefaults(t *testing.T) {
	cfg := config.Default()
	resolved, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"formatting", "vet", "lint", "tests", "examples"}, sessionNames(resolved))
}

func TestResolve_APIGetsProtoSession(t *testing.T) {
	cfg := config.Default()
	cfg.Type = config.TypeAPI
	resolved, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "proto", resolved.Sessions[0].Name)
}

func TestResolve_Disable(t *testing.T) {
	cfg := config.Default()
	cfg.Sessions.Disable = []string{"lint", "examples"}
	resolved, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"formatting", "vet", "tests"}, sessionNames(resolved))
}

func TestResolve_Extra(t *testing.T) {
	cfg := config.Default()
	cfg.Sessions.Extra = []config.SessionSpec{{
		Name:     "docs",
		Desc:     "Build docs",
		Commands: [][]string{{"repoctl", "docs", "generate"}},
	}}
	resolved, err := Resolve(cfg)
	require.NoError(t, err)
	last := resolved.Sessions[len(resolved.Sessions)-1]
	assert.Equal(t, "docs", last.Name)
}

func TestResolve_OptsExtendToolCommands(t *testing.T) {
	cfg := config.Default()
	cfg.Sessions.Opts = config.SessionOptions{
		Formatting: []string{"-s"},
		Vet:        []string{"-tags=integration"},
		Lint:       []string{"--fix"},
		Tests:      []string{"-race", "-count=1"},
	}
	resolved, err := Resolve(cfg)
	require.NoError(t, err)

	byName := map[string][][]string{}
	for _, s := range resolved.Sessions {
		byName[s.Name] = s.Commands
	}
	// Extra arguments land before the tool's path arguments.
	assert.Equal(t, []string{"gofmt", "-l", "-s", "."}, byName["formatting"][0])
	assert.Equal(t, []string{"go", "vet", "-tags=integration", "./..."}, byName["vet"][0])
	assert.Equal(t, []string{"golangci-lint", "run", "--fix"}, byName["lint"][0])
	assert.Equal(t, []string{"go", "test", "-race", "-count=1", "./..."}, byName["tests"][0])
	assert.Equal(t, []string{"-race", "-count=1"}, resolved.Opts.Tests)
}

func TestResolve_NoOptsLeavesDefaults(t *testing.T) {
	resolved, err := Resolve(config.Default())
	require.NoError(t, err)
	formatting, ok := resolved.Get("formatting")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"gofmt", "-l", "."}}, formatting.Commands)
}

func TestResolve_ExtraCollidesWithDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Sessions.Extra = []config.SessionSpec{{
		Name:     "tests",
		Commands: [][]string{{"true"}},
	}}
	_, err := Resolve(cfg)
	require.Error(t, err)
}

func TestConfig_CopyIsDeep(t *testing.T) {
	orig := Config{Sessions: []Session{{
		Name:     "s",
		Commands: [][]string{{"tool", "arg"}},
	}}}
	copied := orig.Copy()
	copied.Sessions[0].Commands[0][0] = "changed"
	assert.Equal(t, "tool", orig.Sessions[0].Commands[0][0])
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	return NewRunner(tooling.NewRunner(zaptest.NewLogger(t)), zaptest.NewLogger(t))
}

func TestRun_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}
	cfg := Config{Sessions: []Session{
		{Name: "a", Commands: [][]string{{"true"}}},
		{Name: "b", Commands: [][]string{{"true"}, {"true"}}},
	}}
	require.NoError(t, newRunner(t).Run(context.Background(), cfg, nil))
}

func TestRun_FailureNamesSessions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}
	cfg := Config{Sessions: []Session{
		{Name: "good", Commands: [][]string{{"true"}}},
		{Name: "bad", Commands: [][]string{{"false"}}},
		{Name: "also-bad", Commands: [][]string{{"false"}}},
	}}
	err := newRunner(t).Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, err.Error(), "also-bad")
}

func TestRun_UnknownSession(t *testing.T) {
	err := newRunner(t).Run(context.Background(), Config{}, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRun_SelectsByName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}
	cfg := Config{Sessions: []Session{
		{Name: "broken", Commands: [][]string{{"false"}}},
		{Name: "fine", Commands: [][]string{{"true"}}},
	}}
	// Only the selected session runs, so the broken one cannot fail the run.
	require.NoError(t, newRunner(t).Run(context.Background(), cfg, []string{"fine"}))
}

func TestRunParallel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}
	cfg := Config{Sessions: []Session{
		{Name: "a", Commands: [][]string{{"true"}}},
		{Name: "b", Commands: [][]string{{"true"}}},
		{Name: "c", Commands: [][]string{{"false"}}},
	}}
	err := newRunner(t).RunParallel(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session c")
}
