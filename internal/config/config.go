// Package config loads repoconfig.yaml, the per-repository configuration for
// repoctl. Every field has a default so a repository without the file still
// gets a working setup.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name looked up at the repo root.
const DefaultFile = "repoconfig.yaml"

// RepoType classifies a repository so session defaults can differ.
type RepoType string

const (
	TypeLib   RepoType = "lib"
	TypeAPI   RepoType = "api"
	TypeApp   RepoType = "app"
	TypeActor RepoType = "actor"
	TypeModel RepoType = "model"
)

var repoTypes = map[RepoType]bool{
	TypeLib:   true,
	TypeAPI:   true,
	TypeApp:   true,
	TypeActor: true,
	TypeModel: true,
}

// Config holds all repoctl configuration.
type Config struct {
	// Type selects the session defaults (lib, api, app, actor, model).
	Type RepoType `yaml:"type"`

	// Docs configures reference page generation.
	Docs DocsConfig `yaml:"docs"`

	// Protobuf configures proto discovery and compilation.
	Protobuf ProtobufConfig `yaml:"protobuf"`

	// Examples configures doc example linting.
	Examples ExamplesConfig `yaml:"examples"`

	// Sessions overrides and extends the default session set.
	Sessions SessionsConfig `yaml:"sessions"`
}

// DocsConfig configures the documentation helpers.
type DocsConfig struct {
	// SourcePath is the root walked for Go packages. Default ".".
	SourcePath string `yaml:"source_path"`

	// OutputPath receives the generated reference pages. Default "reference".
	OutputPath string `yaml:"output_path"`

	// ModulePath is the import path prefix for package pages. When empty it
	// is read from the go.mod next to the config file.
	ModulePath string `yaml:"module_path"`
}

// ProtobufConfig configures protobuf compilation.
type ProtobufConfig struct {
	// ProtoPath is the proto root relative to the repo. Default "proto".
	ProtoPath string `yaml:"proto_path"`

	// ProtoGlob matches proto files under ProtoPath. Default "*.proto".
	ProtoGlob string `yaml:"proto_glob"`

	// IncludePaths are extra -I directories for the compiler.
	IncludePaths []string `yaml:"include_paths"`

	// OutPath receives generated code. Default "gen".
	OutPath string `yaml:"out_path"`

	// DocsPath receives generated proto reference pages.
	// Default "protobuf-reference".
	DocsPath string `yaml:"docs_path"`
}

// ExamplesConfig configures doc example linting.
type ExamplesConfig struct {
	// Checker is the external command examples are piped to. The default,
	// gofmt -e, reads stdin and reports all syntax errors.
	Checker []string `yaml:"checker"`

	// Exclude lists base-name patterns (filepath.Match) skipped while
	// walking for examples.
	Exclude []string `yaml:"exclude"`
}

// SessionsConfig overrides the default session set.
type SessionsConfig struct {
	// Extra sessions appended to the defaults for the repo type.
	Extra []SessionSpec `yaml:"extra"`

	// Disable lists default session names to drop.
	Disable []string `yaml:"disable"`

	// Opts passes extra arguments to the default sessions' tools.
	Opts SessionOptions `yaml:"opts"`
}

// SessionOptions holds per-tool extra arguments. Each list is appended to
// the matching default session's tool invocation, before its path arguments.
type SessionOptions struct {
	Formatting []string `yaml:"formatting"`
	Vet        []string `yaml:"vet"`
	Lint       []string `yaml:"lint"`
	Tests      []string `yaml:"tests"`
}

// SessionSpec is a user-defined session in the config file.
type SessionSpec struct {
	Name     string     `yaml:"name"`
	Desc     string     `yaml:"desc"`
	Commands [][]string `yaml:"commands"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Type: TypeLib,
		Docs: DocsConfig{
			SourcePath: ".",
			OutputPath: "reference",
		},
		Protobuf: ProtobufConfig{
			ProtoPath:    "proto",
			ProtoGlob:    "*.proto",
			IncludePaths: []string{"submodules/api-common-protos"},
			OutPath:      "gen",
			DocsPath:     "protobuf-reference",
		},
		Examples: ExamplesConfig{
			Checker: []string{"gofmt", "-e"},
			Exclude: []string{"testdata"},
		},
	}
}

// Load reads the configuration from dir. A missing file yields Default().
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit file path. Unlike Load,
// a missing file is an error: the caller asked for this file specifically.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Type != "" && !repoTypes[c.Type] {
		return fmt.Errorf("unknown repository type %q", c.Type)
	}
	for _, s := range c.Sessions.Extra {
		if s.Name == "" {
			return fmt.Errorf("extra session without a name")
		}
		if len(s.Commands) == 0 {
			return fmt.Errorf("session %q has no commands", s.Name)
		}
	}
	return nil
}

// applyDefaults fills fields the file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Type == "" {
		c.Type = def.Type
	}
	if c.Docs.SourcePath == "" {
		c.Docs.SourcePath = def.Docs.SourcePath
	}
	if c.Docs.OutputPath == "" {
		c.Docs.OutputPath = def.Docs.OutputPath
	}
	if c.Protobuf.ProtoPath == "" {
		c.Protobuf.ProtoPath = def.Protobuf.ProtoPath
	}
	if c.Protobuf.ProtoGlob == "" {
		c.Protobuf.ProtoGlob = def.Protobuf.ProtoGlob
	}
	if c.Protobuf.IncludePaths == nil {
		c.Protobuf.IncludePaths = def.Protobuf.IncludePaths
	}
	if c.Protobuf.OutPath == "" {
		c.Protobuf.OutPath = def.Protobuf.OutPath
	}
	if c.Protobuf.DocsPath == "" {
		c.Protobuf.DocsPath = def.Protobuf.DocsPath
	}
	if len(c.Examples.Checker) == 0 {
		c.Examples.Checker = def.Examples.Checker
	}
	if c.Examples.Exclude == nil {
		c.Examples.Exclude = def.Examples.Exclude
	}
}
