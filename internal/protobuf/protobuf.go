// Package protobuf assembles and runs the protocol-buffer compiler
// invocation for API repositories. It discovers proto files from the
// configured tree and builds the protoc argument vector; the compiler does
// everything else.
package protobuf

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"repoctl/internal/config"
	"repoctl/internal/tooling"
)

// Discover returns the proto files under cfg.ProtoPath matching
// cfg.ProtoGlob, relative to the proto root and sorted. Finding none is an
// error: an API repo with no protos is misconfigured.
func Discover(cfg config.ProtobufConfig) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.ProtoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(cfg.ProtoGlob, d.Name())
		if err != nil {
			return fmt.Errorf("bad proto_glob %q: %w", cfg.ProtoGlob, err)
		}
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(cfg.ProtoPath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("proto path %s does not exist", cfg.ProtoPath)
		}
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %q under %s", cfg.ProtoGlob, cfg.ProtoPath)
	}
	sort.Strings(files)
	return files, nil
}

// CompileCommand builds the protoc invocation for the discovered files.
// The proto root is always the first include path so imports between the
// repo's own protos resolve.
func CompileCommand(cfg config.ProtobufConfig, files []string) tooling.Command {
	args := []string{"-I", cfg.ProtoPath}
	for _, include := range cfg.IncludePaths {
		args = append(args, "-I", include)
	}
	args = append(args,
		"--go_out="+cfg.OutPath,
		"--go-grpc_out="+cfg.OutPath,
	)
	for _, file := range files {
		args = append(args, filepath.ToSlash(filepath.Join(cfg.ProtoPath, file)))
	}
	return tooling.Command{Binary: "protoc", Args: args}
}

// Generate discovers the protos and runs the compiler. The compiler's own
// diagnostics are returned verbatim on failure.
func Generate(ctx context.Context, runner *tooling.Runner, logger *zap.Logger, cfg config.ProtobufConfig) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := Discover(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.OutPath, err)
	}

	cmd := CompileCommand(cfg, files)
	logger.Info("compiling protos",
		zap.Int("files", len(files)), zap.String("out", cfg.OutPath))
	result, err := runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("protoc failed (exit %d):\n%s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return files, nil
}
