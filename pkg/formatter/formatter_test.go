package formatter

import (
	"errors"
	"testing"
)

// TestFormat tests basic formatting scenarios.
func TestFormat(t *testing.T) {
	type tc struct {
		input string
		opts  []Option
		want  string
	}

	tests := map[string]tc{
		"simple block": {
			input: "foo {\nbar\n}",
			want:  "foo {\n    bar\n}\n",
		},
		"empty input": {
			input: "",
			want:  "",
		},
		"only blank lines with strip leading": {
			input: "\n\n\n",
			want:  "",
		},
		"only blank lines with collapse only": {
			input: "\n\n\n",
			opts:  []Option{WithBlankPolicy(CollapseOnly)},
			want:  "\n",
		},
		"no brackets round trip": {
			input: "alpha  \nbeta\t\ngamma",
			want:  "alpha\nbeta\ngamma\n",
		},
		"delimiter expands to lines": {
			input: "Item {$x: 1$}\n",
			want:  "Item {\n    x: 1\n}\n",
		},
		"crlf input": {
			input: "Item {\r\nx: 1\r\n}\r\n",
			want:  "Item {\n    x: 1\n}\n",
		},
		"qml component": {
			input: `import QtQuick 2.0

Rectangle {
width: 100; height: 100
        color: "red"


  Text {
  text: qsTr("Hello")
  }
}
`,
			want: `import QtQuick 2.0

Rectangle {
    width: 100; height: 100
    color: "red"

    Text {
        text: qsTr("Hello")
    }
}
`,
		},
		"leading blank lines stripped": {
			input: "\n\n  Item {\n}\n",
			want:  "Item {\n}\n",
		},
		"leading blank line kept with collapse only": {
			input: "\n\n  Item {\n}\n",
			opts:  []Option{WithBlankPolicy(CollapseOnly)},
			want:  "\nItem {\n}\n",
		},
		"stray closer without clamping": {
			input: "}\na {\nb\n}\n",
			want:  "}\na {\nb\n}\n",
		},
		"stray closer with clamping": {
			input: "}\na {\nb\n}\n",
			opts:  []Option{WithClampNegative(true)},
			want:  "}\na {\n    b\n}\n",
		},
		"one-line block before block with clamping": {
			input: "Item {}\nRectangle {\ncolor: \"red\"\n}\n",
			opts:  []Option{WithClampNegative(true)},
			want:  "Item {}\nRectangle {\n    color: \"red\"\n}\n",
		},
		"ascii separators stripped": {
			input: "a {\n\x1fb\x1f\n}\n",
			want:  "a {\n    b\n}\n",
		},
		"indent width two": {
			input: "Column {\nRow {\nText\n}\n}\n",
			opts:  []Option{WithIndentWidth(2)},
			want:  "Column {\n  Row {\n    Text\n  }\n}\n",
		},
		"inline braces dedent their own line": {
			input: "Column {\nItem {}\nText\n}\n",
			want:  "Column {\nItem {}\n    Text\n}\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := New(tt.opts...)
			got := f.Format(tt.input)
			if got != tt.want {
				t.Errorf("Format() mismatch\ngot:\n%q\nwant:\n%q", got, tt.want)
			}

			again := f.Format(got)
			if again != got {
				t.Errorf("Format() not idempotent\nfirst:\n%q\nsecond:\n%q", got, again)
			}
		})
	}
}

func TestFormatWithResult(t *testing.T) {
	type tc struct {
		input       string
		wantChanged bool
		wantDepth   int
		wantIssues  int
	}

	tests := map[string]tc{
		"already formatted": {
			input:       "Item {\n    x: 1\n}\n",
			wantChanged: false,
		},
		"needs indentation": {
			input:       "Item {\nx: 1\n}\n",
			wantChanged: true,
		},
		"missing final newline": {
			input:       "Item {}",
			wantChanged: true,
		},
		"empty": {
			input:       "",
			wantChanged: false,
		},
		"one-line blocks at top level": {
			input:       "Item {}\nItem { id: b }\n",
			wantChanged: false,
		},
		"unclosed block": {
			input:       "Item {\n    x: 1\n",
			wantChanged: false,
			wantDepth:   1,
			wantIssues:  1,
		},
		"stray closer": {
			input:       "}\n",
			wantChanged: false,
			wantDepth:   -1,
			wantIssues:  2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := New().FormatWithResult(tt.input)
			if res.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v (content %q)", res.Changed, tt.wantChanged, res.Content)
			}
			if res.FinalDepth != tt.wantDepth {
				t.Errorf("FinalDepth = %d, want %d", res.FinalDepth, tt.wantDepth)
			}
			if len(res.Imbalances) != tt.wantIssues {
				t.Errorf("len(Imbalances) = %d, want %d", len(res.Imbalances), tt.wantIssues)
			}
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	type tc struct {
		mutate  func(*Options)
		wantErr error
	}

	tests := map[string]tc{
		"defaults": {
			mutate: func(*Options) {},
		},
		"negative indent width": {
			mutate:  func(o *Options) { o.IndentWidth = -1 },
			wantErr: ErrInvalidOptions,
		},
		"newline delimiter": {
			mutate:  func(o *Options) { o.Delimiter = '\n' },
			wantErr: ErrInvalidOptions,
		},
		"space delimiter": {
			mutate:  func(o *Options) { o.Delimiter = ' ' },
			wantErr: ErrInvalidOptions,
		},
		"overlapping bracket sets": {
			mutate:  func(o *Options) { o.Brackets.IndentAfter = "{}" },
			wantErr: ErrInvalidOptions,
		},
		"unknown blank policy": {
			mutate:  func(o *Options) { o.BlankPolicy = BlankPolicy(7) },
			wantErr: ErrUnknownBlankPolicy,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			f, err := NewWithOptions(opts)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewWithOptions: %v", err)
				}
				if f == nil {
					t.Fatal("NewWithOptions returned nil formatter")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewWithOptions error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBlankPolicy(t *testing.T) {
	type tc struct {
		input   string
		want    BlankPolicy
		wantErr bool
	}

	tests := map[string]tc{
		"strip-leading":    {input: "strip-leading", want: StripLeadingThenCollapse},
		"go name":          {input: "StripLeadingThenCollapse", want: StripLeadingThenCollapse},
		"collapse":         {input: "collapse", want: CollapseOnly},
		"collapse only":    {input: " CollapseOnly ", want: CollapseOnly},
		"unknown":          {input: "squash", wantErr: true},
		"empty is unknown": {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBlankPolicy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBlankPolicy) {
					t.Fatalf("ParseBlankPolicy(%q) error = %v, want ErrUnknownBlankPolicy", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBlankPolicy(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBlankPolicy(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if back, _ := ParseBlankPolicy(got.String()); back != got {
				t.Errorf("String() %q does not parse back to %v", got.String(), got)
			}
		})
	}
}

func TestFormatResultSourceLine(t *testing.T) {
	res := New().FormatWithResult("Item {$x: 1\n}$}\nText\n")
	// Logical lines: "Item {", "x: 1", "}", "}", "Text".
	want := []int{0, 0, 1, 1, 2}
	for logical, physical := range want {
		if got := res.SourceLine(logical); got != physical {
			t.Errorf("SourceLine(%d) = %d, want %d", logical, got, physical)
		}
	}

	if len(res.Imbalances) != 2 {
		t.Fatalf("Imbalances = %v, want a negative descent and an unclosed end", res.Imbalances)
	}
	if got := res.SourceLine(res.Imbalances[0].Line); got != 1 {
		t.Errorf("negative descent on physical line %d, want 1", got)
	}
	if got := res.SourceLine(99); got != 99 {
		t.Errorf("SourceLine(99) = %d, want passthrough", got)
	}
}
