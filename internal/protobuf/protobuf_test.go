package protobuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoctl/internal/config"
)

func protoTree(t *testing.T, files ...string) config.ProtobufConfig {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("syntax = \"proto3\";\n"), 0o644))
	}
	cfg := config.Default().Protobuf
	cfg.ProtoPath = dir
	return cfg
}

func TestDiscover(t *testing.T) {
	cfg := protoTree(t,
		"frequency/v1/meter.proto",
		"frequency/v1/common.proto",
		"notes.txt",
	)
	files, err := Discover(cfg)
	require.NoError(t, err)
	want := []string{"frequency/v1/common.proto", "frequency/v1/meter.proto"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discovered files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_CustomGlob(t *testing.T) {
	cfg := protoTree(t, "a.prt", "b.proto")
	cfg.ProtoGlob = "*.prt"
	files, err := Discover(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.prt"}, files)
}

func TestDiscover_EmptyIsAnError(t *testing.T) {
	cfg := protoTree(t, "readme.txt")
	_, err := Discover(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files matching")
}

func TestDiscover_MissingRoot(t *testing.T) {
	cfg := config.Default().Protobuf
	cfg.ProtoPath = filepath.Join(t.TempDir(), "does-not-exist")
	_, err := Discover(cfg)
	require.Error(t, err)
}

func TestCompileCommand(t *testing.T) {
	cfg := config.ProtobufConfig{
		ProtoPath:    "proto",
		IncludePaths: []string{"submodules/api-common-protos"},
		OutPath:      "gen",
	}
	cmd := CompileCommand(cfg, []string{"svc/v1/svc.proto"})

	assert.Equal(t, "protoc", cmd.Binary)
	assert.Equal(t, []string{
		"-I", "proto",
		"-I", "submodules/api-common-protos",
		"--go_out=gen",
		"--go-grpc_out=gen",
		"proto/svc/v1/svc.proto",
	}, cmd.Args)
}
