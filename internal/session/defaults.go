package session

import (
	"fmt"

	"repoctl/internal/config"
)

// Shared session definitions. Every repository type gets the formatting,
// vet, lint, and test sessions; API repos additionally regenerate their
// protobuf code before testing. Per-tool extra arguments from Options are
// spliced into the tool invocation ahead of its path arguments.

func formattingSession(opts Options) Session {
	argv := append([]string{"gofmt", "-l"}, opts.Formatting...)
	return Session{
		Name: "formatting",
		Desc: "Check code formatting",
		Commands: [][]string{
			append(argv, "."),
		},
	}
}

func vetSession(opts Options) Session {
	argv := append([]string{"go", "vet"}, opts.Vet...)
	return Session{
		Name: "vet",
		Desc: "Run static analysis",
		Commands: [][]string{
			append(argv, "./..."),
		},
	}
}

func lintSession(opts Options) Session {
	return Session{
		Name: "lint",
		Desc: "Run the linter",
		Commands: [][]string{
			append([]string{"golangci-lint", "run"}, opts.Lint...),
		},
	}
}

func testSession(opts Options) Session {
	argv := append([]string{"go", "test"}, opts.Tests...)
	return Session{
		Name: "tests",
		Desc: "Run the test suite",
		Commands: [][]string{
			append(argv, "./..."),
		},
	}
}

func examplesSession() Session {
	return Session{
		Name: "examples",
		Desc: "Lint code examples in documentation",
		Commands: [][]string{
			{"repoctl", "lint-examples"},
		},
	}
}

func protoSession() Session {
	return Session{
		Name: "proto",
		Desc: "Regenerate protobuf code",
		Commands: [][]string{
			{"repoctl", "proto", "generate"},
		},
	}
}

// defaultSessions builds the default session set for a repository type.
func defaultSessions(t config.RepoType, opts Options) ([]Session, error) {
	base := []Session{
		formattingSession(opts),
		vetSession(opts),
		lintSession(opts),
		testSession(opts),
		examplesSession(),
	}
	switch t {
	case config.TypeLib, config.TypeApp, config.TypeActor, config.TypeModel:
		return base, nil
	case config.TypeAPI:
		return append([]Session{protoSession()}, base...), nil
	default:
		return nil, fmt.Errorf("no default sessions for repository type %q", t)
	}
}
