package fileio

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSource(t *testing.T) {
	tests := map[string]struct {
		input   []byte
		want    string
		wantErr error
	}{
		"plain":           {input: []byte("Item {}\n"), want: "Item {}\n"},
		"crlf normalized": {input: []byte("a\r\nb\r\n"), want: "a\nb\n"},
		"lone cr kept":    {input: []byte("a\rb"), want: "a\rb"},
		"multibyte":       {input: []byte("text: \"héllo ✓\"\n"), want: "text: \"héllo ✓\"\n"},
		"invalid utf8":    {input: []byte{'a', 0xff, 'b'}, wantErr: ErrInvalidUTF8},
		"empty":           {input: nil, want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeSource(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.qml")
	require.NoError(t, os.WriteFile(good, []byte("Item {\r\n}\r\n"), 0644))
	src, err := ReadSource(good)
	require.NoError(t, err)
	assert.Equal(t, "Item {\n}\n", src)

	bad := filepath.Join(dir, "bad.qml")
	require.NoError(t, os.WriteFile(bad, []byte{0xc3, 0x28}, 0644))
	_, err = ReadSource(bad)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Contains(t, err.Error(), bad)

	_, err = ReadSource(filepath.Join(dir, "missing.qml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.qml")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0600))

	require.NoError(t, WriteAtomic(path, "Item {\n}\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Item {\n}\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteAtomicNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.qml")

	require.NoError(t, WriteAtomic(path, "x\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestWriteAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "main.qml")
	assert.Error(t, WriteAtomic(path, "x\n"))
}
