// Package artifact writes the JSON files the front end consumes. All
// artifacts are regenerated in full, so writes are atomic: a partial file
// must never be visible at the published path.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Marshal renders v as JSON. Indented output is for the small artifacts
// humans read (manifest, stats, summary); the overview arrays stay compact.
func Marshal(v any, indent bool) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// Write writes data to a temp file and atomically renames it into place.
func Write(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// WriteGzip writes data gzip-compressed to path (callers pass a .json.gz
// path), with the same atomic rename as Write. Useful when the artifacts
// are served from static hosting without on-the-fly compression.
func WriteGzip(path string, data []byte) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("gzip write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip close: %w", err)
	}
	return Write(path, buf.Bytes())
}

// WriteJSON marshals v and writes it to path, appending ".gz" and
// compressing when gz is set.
func WriteJSON(path string, v any, indent, gz bool) error {
	b, err := Marshal(v, indent)
	if err != nil {
		return err
	}
	if gz {
		return WriteGzip(path+".gz", b)
	}
	return Write(path, b)
}
