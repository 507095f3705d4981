package formatter

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	type tc struct {
		input string
		delim rune
		want  []string
	}

	tests := map[string]tc{
		"delimiter splits into logical lines": {
			input: "a$b$c",
			delim: '$',
			want:  []string{"a", "b", "c"},
		},
		"no delimiter yields one line": {
			input: "no-delim",
			delim: '$',
			want:  []string{"no-delim"},
		},
		"adjacent delimiters keep empty fragment": {
			input: "a$$b",
			delim: '$',
			want:  []string{"a", "", "b"},
		},
		"trailing delimiter": {
			input: "a$",
			delim: '$',
			want:  []string{"a", ""},
		},
		"empty input": {
			input: "",
			delim: '$',
			want:  nil,
		},
		"single newline is one empty line": {
			input: "\n",
			delim: '$',
			want:  []string{""},
		},
		"last line without newline": {
			input: "a\nb",
			delim: '$',
			want:  []string{"a", "b"},
		},
		"trailing newline does not add a line": {
			input: "a\nb\n",
			delim: '$',
			want:  []string{"a", "b"},
		},
		"trailing blank line is kept": {
			input: "a\n\n",
			delim: '$',
			want:  []string{"a", ""},
		},
		"trailing whitespace trimmed": {
			input: "a  \t\nb",
			delim: '$',
			want:  []string{"a", "b"},
		},
		"carriage returns trimmed": {
			input: "a \r\nb\r\n",
			delim: '$',
			want:  []string{"a", "b"},
		},
		"leading whitespace kept": {
			input: "  lead",
			delim: '$',
			want:  []string{"  lead"},
		},
		"trim happens before split": {
			input: "x $ y ",
			delim: '$',
			want:  []string{"x ", " y"},
		},
		"ascii separators trimmed": {
			input: "a\x1c\x1f\nb\x1e",
			delim: '$',
			want:  []string{"a", "b"},
		},
		"custom delimiter": {
			input: "a;b$c",
			delim: ';',
			want:  []string{"a", "b$c"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Split(tt.input, tt.delim)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitNeverContainsDelimiter(t *testing.T) {
	inputs := []string{
		"a$b\nc$$d",
		"$$$",
		"Item {$width: 1$}\n",
	}

	for _, input := range inputs {
		for _, line := range Split(input, '$') {
			for _, r := range line {
				if r == '$' {
					t.Fatalf("Split(%q) produced %q containing the delimiter", input, line)
				}
			}
		}
	}
}
