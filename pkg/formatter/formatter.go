// Package formatter re-indents QML-style source from bracket nesting depth.
//
// Formatting is purely lexical. Input indentation is discarded and every
// line is re-indented from the brackets seen on the lines before it. A
// Formatter holds no mutable state, so one instance may be shared by any
// number of goroutines.
package formatter

import (
	"strings"
)

// Formatter formats QML source.
type Formatter struct {
	opts Options
}

// New creates a Formatter from DefaultOptions with opts applied.
func New(opts ...Option) *Formatter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Formatter{opts: o}
}

// NewWithOptions creates a Formatter after validating opts.
func NewWithOptions(opts Options) (*Formatter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Formatter{opts: opts}, nil
}

// Options returns a copy of the formatter's options.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format reformats source and returns the result. Every emitted line ends
// with a newline, and empty input yields empty output.
func (f *Formatter) Format(source string) string {
	return f.FormatWithResult(source).Content
}

// FormatResult contains the result of formatting a document.
type FormatResult struct {
	// Content is the formatted content.
	Content string
	// Changed indicates if the content was different from the original.
	Changed bool
	// Trace reports bracket balance for the document. Imbalance lines are
	// logical line indices; use SourceLine to map them to the input.
	Trace

	origins []int
}

// SourceLine maps a logical line index to the 0-based physical line of the
// input it was split from.
func (r FormatResult) SourceLine(logical int) int {
	if logical < 0 || logical >= len(r.origins) {
		return logical
	}
	return r.origins[logical]
}

// FormatWithResult formats the source, indicates if it changed, and
// reports where brackets did not balance.
func (f *Formatter) FormatWithResult(source string) FormatResult {
	lines, origins := splitLines(source, f.opts.Delimiter)
	indented, trace := Reconstruct(lines, f.opts)
	collapsed := Collapse(indented, f.opts.BlankPolicy)

	content := join(collapsed)
	return FormatResult{
		Content: content,
		Changed: content != source,
		Trace:   trace,
		origins: origins,
	}
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	n := len(lines)
	for _, l := range lines {
		n += len(l)
	}
	sb.Grow(n)
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
