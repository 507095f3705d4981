package formatter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBlankPolicy is returned by ParseBlankPolicy for unrecognized names.
	ErrUnknownBlankPolicy = errors.New("unknown blank policy")
	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid formatter options")
)

// DefaultDelimiter splits a physical line into several logical lines.
const DefaultDelimiter = '$'

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 4

// Brackets holds the character classes that drive nesting depth.
type Brackets struct {
	// OutdentBefore characters decrement depth before their line is emitted,
	// so a closing brace lines up with the line that opened the block.
	OutdentBefore string
	// IndentAfter characters increment depth after their line is emitted.
	IndentAfter string
	// OutdentAfter characters decrement depth after their line is emitted.
	OutdentAfter string
}

// DefaultBrackets is the QML bracket style.
var DefaultBrackets = Brackets{
	OutdentBefore: "}",
	IndentAfter:   "[{(",
	OutdentAfter:  "])",
}

func (b Brackets) validate() error {
	sets := []struct {
		name  string
		chars string
	}{
		{"outdent-before", b.OutdentBefore},
		{"indent-after", b.IndentAfter},
		{"outdent-after", b.OutdentAfter},
	}
	seen := make(map[rune]string)
	for _, set := range sets {
		for _, r := range set.chars {
			if prev, ok := seen[r]; ok && prev != set.name {
				return fmt.Errorf("%w: %q is in both %s and %s", ErrInvalidOptions, r, prev, set.name)
			}
			seen[r] = set.name
		}
	}
	return nil
}

// BlankPolicy selects how runs of blank lines are normalized.
type BlankPolicy int

const (
	// StripLeadingThenCollapse drops blank lines at the start of the
	// document and then collapses every remaining run to a single line.
	StripLeadingThenCollapse BlankPolicy = iota
	// CollapseOnly collapses every run of blank lines to a single line,
	// including a run at the start of the document.
	CollapseOnly
)

// String returns the configuration name of the policy.
func (p BlankPolicy) String() string {
	switch p {
	case StripLeadingThenCollapse:
		return "strip-leading"
	case CollapseOnly:
		return "collapse"
	default:
		return fmt.Sprintf("BlankPolicy(%d)", int(p))
	}
}

// ParseBlankPolicy converts a configuration name into a BlankPolicy.
func ParseBlankPolicy(name string) (BlankPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "strip-leading", "stripleadingthencollapse", "strip_leading":
		return StripLeadingThenCollapse, nil
	case "collapse", "collapseonly", "collapse-only", "collapse_only":
		return CollapseOnly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBlankPolicy, name)
	}
}

// Options controls a Formatter.
type Options struct {
	// Delimiter splits physical lines into logical lines.
	Delimiter rune
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
	Brackets    Brackets
	BlankPolicy BlankPolicy
	// ClampNegative floors depth at zero. Without it unbalanced closers
	// drive depth negative and the drift carries through the document.
	ClampNegative bool
}

// DefaultOptions returns the options the formatter uses when none are given.
func DefaultOptions() Options {
	return Options{
		Delimiter:   DefaultDelimiter,
		IndentWidth: DefaultIndentWidth,
		Brackets:    DefaultBrackets,
		BlankPolicy: StripLeadingThenCollapse,
	}
}

// Validate reports whether the options can be used to format text.
func (o Options) Validate() error {
	if o.IndentWidth < 0 {
		return fmt.Errorf("%w: indent width %d is negative", ErrInvalidOptions, o.IndentWidth)
	}
	if o.Delimiter == '\n' || isSpace(o.Delimiter) {
		return fmt.Errorf("%w: delimiter %q is whitespace", ErrInvalidOptions, o.Delimiter)
	}
	switch o.BlankPolicy {
	case StripLeadingThenCollapse, CollapseOnly:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownBlankPolicy, o.BlankPolicy)
	}
	return o.Brackets.validate()
}

// Option configures a Formatter.
type Option func(*Options)

// WithIndentWidth sets the number of spaces per nesting level.
func WithIndentWidth(n int) Option {
	return func(o *Options) { o.IndentWidth = n }
}

// WithDelimiter sets the logical line delimiter.
func WithDelimiter(r rune) Option {
	return func(o *Options) { o.Delimiter = r }
}

// WithBrackets replaces the bracket character classes.
func WithBrackets(b Brackets) Option {
	return func(o *Options) { o.Brackets = b }
}

// WithBlankPolicy selects the blank line strategy.
func WithBlankPolicy(p BlankPolicy) Option {
	return func(o *Options) { o.BlankPolicy = p }
}

// WithClampNegative floors nesting depth at zero.
func WithClampNegative(clamp bool) Option {
	return func(o *Options) { o.ClampNegative = clamp }
}
