package formatter

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestGolden formats every testdata/*.txtar archive. Each archive holds an
// input.qml and output.qml file; "key: value" lines in the archive comment
// select options (blank, clamp, indent, delimiter).
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden files found")
	}

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing archive: %v", err)
			}

			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}
			input, ok := files["input.qml"]
			if !ok {
				t.Fatal("archive has no input.qml")
			}
			want, ok := files["output.qml"]
			if !ok {
				t.Fatal("archive has no output.qml")
			}

			f := New(goldenOptions(t, string(ar.Comment))...)
			got := f.Format(input)
			if got != want {
				t.Errorf("Format() mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
			if again := f.Format(want); again != want {
				t.Errorf("golden output is not stable\ngot:\n%s", again)
			}
		})
	}
}

func goldenOptions(t *testing.T, comment string) []Option {
	t.Helper()

	var opts []Option
	for _, line := range strings.Split(comment, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "blank":
			p, err := ParseBlankPolicy(value)
			if err != nil {
				t.Fatal(err)
			}
			opts = append(opts, WithBlankPolicy(p))
		case "clamp":
			clamp, err := strconv.ParseBool(value)
			if err != nil {
				t.Fatal(err)
			}
			opts = append(opts, WithClampNegative(clamp))
		case "indent":
			n, err := strconv.Atoi(value)
			if err != nil {
				t.Fatal(err)
			}
			opts = append(opts, WithIndentWidth(n))
		case "delimiter":
			opts = append(opts, WithDelimiter([]rune(value)[0]))
		}
	}
	return opts
}
