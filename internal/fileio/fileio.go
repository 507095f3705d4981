// Package fileio reads QML sources as text and writes formatted results
// back in place.
package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a source is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

const defaultPerm fs.FileMode = 0644

// DecodeSource validates data as UTF-8 and normalizes CRLF line endings.
func DecodeSource(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// ReadSource reads and decodes the file at path.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	src, err := DecodeSource(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return src, nil
}

// WriteAtomic replaces the file at path with content. The content goes to a
// temporary file in the same directory which is synced and renamed over the
// target, so readers never observe a partial file. An existing file keeps
// its permission bits.
func WriteAtomic(path, content string) error {
	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qmlfmt-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing file: %w", err)
	}

	bw := bufio.NewWriter(tmp)
	if _, err := bw.WriteString(content); err != nil {
		return cleanup(err)
	}
	if err := bw.Flush(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
