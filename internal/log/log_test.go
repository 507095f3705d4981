package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrefixes(t *testing.T) {
	type tc struct {
		logf   func(string, ...any)
		prefix string
	}

	tests := map[string]tc{
		"debug":  {logf: Debug, prefix: "] hello 1"},
		"server": {logf: Server, prefix: "] [server] hello 1"},
		"format": {logf: Format, prefix: "] [format] hello 1"},
		"driver": {logf: Driver, prefix: "] [driver] hello 1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			defer SetOutput(nil)

			tt.logf("hello %d", 1)

			got := buf.String()
			if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "\n") {
				t.Fatalf("unexpected line shape: %q", got)
			}
			if !strings.Contains(got, tt.prefix) {
				t.Errorf("log line %q does not contain %q", got, tt.prefix)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatal("Enabled() = true with no output")
	}
	// Must not panic without an output.
	Server("dropped %s", "message")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qmlfmt.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer SetOutput(nil)

	if !Enabled() {
		t.Fatal("Enabled() = false after OpenFile")
	}
	Driver("formatted %s", "a.qml")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[driver] formatted a.qml") {
		t.Errorf("log file content = %q", data)
	}
}
