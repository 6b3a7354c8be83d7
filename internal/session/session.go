// Package session defines the named test/lint units repoctl runs for a
// repository ("run the formatter check", "run the tests") and the default
// session sets per repository type. Sessions only spawn the configured
// external tools; there is no build logic here.
package session

import (
	"fmt"

	"repoctl/internal/config"
)

// Session is one named unit of work: its commands run in order and the
// session fails at the first command that does.
type Session struct {
	Name     string
	Desc     string
	Commands [][]string
}

// Options are the per-tool extra arguments already folded into the default
// sessions at resolve time, kept on the config for inspection.
type Options struct {
	Formatting []string
	Vet        []string
	Lint       []string
	Tests      []string
}

// Config is the resolved session set for a repository.
type Config struct {
	Sessions []Session
	Opts     Options
}

// Copy deep-copies the config so a caller can tweak a default set without
// sharing slices.
func (c Config) Copy() Config {
	out := Config{
		Sessions: make([]Session, len(c.Sessions)),
		Opts: Options{
			Formatting: append([]string(nil), c.Opts.Formatting...),
			Vet:        append([]string(nil), c.Opts.Vet...),
			Lint:       append([]string(nil), c.Opts.Lint...),
			Tests:      append([]string(nil), c.Opts.Tests...),
		},
	}
	for i, s := range c.Sessions {
		copied := Session{Name: s.Name, Desc: s.Desc}
		copied.Commands = make([][]string, len(s.Commands))
		for j, cmd := range s.Commands {
			copied.Commands[j] = append([]string(nil), cmd...)
		}
		out.Sessions[i] = copied
	}
	return out
}

// Get returns the named session.
func (c Config) Get(name string) (Session, bool) {
	for _, s := range c.Sessions {
		if s.Name == name {
			return s, true
		}
	}
	return Session{}, false
}

// Resolve builds the session set for a repository: the defaults for its
// type with the per-tool extra arguments applied, minus the disabled names,
// plus the extra sessions from the config file.
func Resolve(cfg config.Config) (Config, error) {
	opts := Options{
		Formatting: cfg.Sessions.Opts.Formatting,
		Vet:        cfg.Sessions.Opts.Vet,
		Lint:       cfg.Sessions.Opts.Lint,
		Tests:      cfg.Sessions.Opts.Tests,
	}
	sessions, err := defaultSessions(cfg.Type, opts)
	if err != nil {
		return Config{}, err
	}
	resolved := Config{Sessions: sessions, Opts: opts}.Copy()

	if len(cfg.Sessions.Disable) > 0 {
		disabled := map[string]bool{}
		for _, name := range cfg.Sessions.Disable {
			disabled[name] = true
		}
		kept := resolved.Sessions[:0]
		for _, s := range resolved.Sessions {
			if !disabled[s.Name] {
				kept = append(kept, s)
			}
		}
		resolved.Sessions = kept
	}

	for _, spec := range cfg.Sessions.Extra {
		if _, exists := resolved.Get(spec.Name); exists {
			return Config{}, fmt.Errorf("extra session %q collides with a default", spec.Name)
		}
		resolved.Sessions = append(resolved.Sessions, Session{
			Name:     spec.Name,
			Desc:     spec.Desc,
			Commands: spec.Commands,
		})
	}
	return resolved, nil
}
