package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// Encode writes idx as indented JSON. Non-ASCII and HTML characters are
// written literally. Map keys are sorted, so unchanged input gives
// identical bytes apart from meta.built_at.
func Encode(w io.Writer, idx *Index) error {
	idx.normalize()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(idx)
}

// Write serializes idx to path, creating parent directories. The file is
// replaced atomically, so readers see either the old or the new index.
func Write(path string, idx *Index) error {
	var buf bytes.Buffer
	if err := Encode(&buf, idx); err != nil {
		return errors.New(errors.ErrCodeInternal, "failed to encode index", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return outputError(path, "failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return outputError(path, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return outputError(path, "failed to write index", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return outputError(path, "failed to write index", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return outputError(path, "failed to set index permissions", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return outputError(path, "failed to replace index", err)
	}

	return nil
}

func outputError(path, msg string, cause error) error {
	return errors.New(errors.ErrCodeOutputWrite, fmt.Sprintf("%s: %s", msg, path), cause).
		WithDetail("path", path).
		WithSuggestion("Check that the output directory is writable")
}

// Read loads an index written by Write.
func Read(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeIndexNotFound, fmt.Sprintf("no index at %s", path), err).
				WithSuggestion("Run 'thesisdash index' to build it")
		}
		return nil, errors.New(errors.ErrCodeFileUnreadable, fmt.Sprintf("cannot read %s", path), err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.New(errors.ErrCodeIndexCorrupt, fmt.Sprintf("cannot parse %s", path), err).
			WithSuggestion("Rebuild with 'thesisdash index'")
	}
	idx.normalize()
	return &idx, nil
}
