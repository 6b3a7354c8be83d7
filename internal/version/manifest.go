package version

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadManifest decodes a versions.json array. Unknown fields are an error:
// the manifest schema is closed and a typo must not be dropped silently.
func ReadManifest(r io.Reader) ([]Info, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var infos []Info
	if err := dec.Decode(&infos); err != nil {
		return nil, fmt.Errorf("decoding version manifest: %w", err)
	}
	return infos, nil
}

// WriteManifest encodes the entries compactly (no spaces, no trailing
// newline), matching the format the docs deploy tool writes itself.
func WriteManifest(w io.Writer, infos []Info) error {
	data, err := json.Marshal(infos)
	if err != nil {
		return fmt.Errorf("encoding version manifest: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing version manifest: %w", err)
	}
	return nil
}

// SortStream reads a manifest from in and writes the sorted manifest to out.
func SortStream(in io.Reader, out io.Writer) error {
	infos, err := ReadManifest(in)
	if err != nil {
		return err
	}
	return WriteManifest(out, Sort(infos))
}

// SortFile rewrites path in place with its sorted content. The file is only
// touched after the input parsed successfully.
func SortFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	infos, err := ReadManifest(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := WriteManifest(&buf, Sort(infos)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewriting %s: %w", path, err)
	}
	return nil
}
