// Package log provides centralized debug logging for the CLI and the
// language server. Nothing is written until an output is set.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out io.Writer
	mu  sync.Mutex
)

// SetOutput sets the log output. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// OpenFile opens path for appending, creating parent directories as
// needed, and makes it the log output. The caller closes the file.
func OpenFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}

func write(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %s"+format+"\n", append([]any{ts, prefix}, args...)...)
}

// Debug writes an unprefixed log message.
func Debug(format string, args ...any) {
	write("", format, args...)
}

// Server writes a server-prefixed log message.
func Server(format string, args ...any) {
	write("[server] ", format, args...)
}

// Format writes a format-prefixed log message.
func Format(format string, args ...any) {
	write("[format] ", format, args...)
}

// Driver writes a driver-prefixed log message.
func Driver(format string, args ...any) {
	write("[driver] ", format, args...)
}
