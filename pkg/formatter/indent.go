package formatter

import (
	"fmt"
	"strings"
)

// ImbalanceKind classifies an Imbalance.
type ImbalanceKind int

const (
	// ImbalanceNegative marks a line that closed more brackets than were open.
	ImbalanceNegative ImbalanceKind = iota
	// ImbalanceUnclosed marks a document that ends with depth other than zero.
	ImbalanceUnclosed
)

// Imbalance records a point where bracket nesting did not add up.
type Imbalance struct {
	// Line is the 0-based index of the logical line. For ImbalanceUnclosed
	// it is the index of the last line.
	Line int
	// Depth is the depth after the whole line was processed, before
	// clamping.
	Depth int
	Kind  ImbalanceKind
}

// Message describes the imbalance without its position.
func (im Imbalance) Message() string {
	switch im.Kind {
	case ImbalanceNegative:
		return fmt.Sprintf("unmatched closing bracket (depth %d)", im.Depth)
	default:
		return fmt.Sprintf("document ends at depth %d", im.Depth)
	}
}

func (im Imbalance) String() string {
	return fmt.Sprintf("line %d: %s", im.Line+1, im.Message())
}

// Trace describes how depth evolved during Reconstruct.
type Trace struct {
	FinalDepth int
	Imbalances []Imbalance
}

// Balanced reports whether every bracket was matched.
func (t Trace) Balanced() bool {
	return len(t.Imbalances) == 0
}

// reconstructor walks logical lines and tracks nesting depth.
type reconstructor struct {
	opts  Options
	depth int
	trace Trace
	// negative is set while depth is below zero so each descent is
	// reported once rather than on every following line.
	negative bool
}

// Reconstruct rewrites the leading whitespace of every logical line from
// bracket nesting depth.
//
// Characters in Brackets.OutdentBefore decrement depth before the line is
// emitted. The line is then emitted at IndentWidth spaces per level (none
// when depth is negative). Finally characters in Brackets.IndentAfter and
// Brackets.OutdentAfter adjust depth for the lines that follow. Brackets
// inside string literals and comments count like any other character.
//
// Depth is only judged at the end of a line: a line that leaves depth below
// zero is reported as ImbalanceNegative and, with ClampNegative, depth is
// reset to zero before the next line.
func Reconstruct(lines []string, opts Options) ([]string, Trace) {
	r := &reconstructor{opts: opts}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, r.line(i, line))
	}
	r.trace.FinalDepth = r.depth
	if r.depth != 0 && len(lines) > 0 {
		r.trace.Imbalances = append(r.trace.Imbalances, Imbalance{
			Line:  len(lines) - 1,
			Depth: r.depth,
			Kind:  ImbalanceUnclosed,
		})
	}
	return out, r.trace
}

func (r *reconstructor) line(index int, line string) string {
	b := r.opts.Brackets

	for _, c := range line {
		if strings.ContainsRune(b.OutdentBefore, c) {
			r.depth--
		}
	}

	emitted := r.indent() + strings.TrimFunc(line, isSpace)

	for _, c := range line {
		if strings.ContainsRune(b.IndentAfter, c) {
			r.depth++
		}
		if strings.ContainsRune(b.OutdentAfter, c) {
			r.depth--
		}
	}

	r.settle(index)
	return emitted
}

// settle judges depth once the whole line has been walked. A closer and an
// opener on the same line (`Item {}`, `} else {`) cancel out.
func (r *reconstructor) settle(index int) {
	if r.depth >= 0 {
		r.negative = false
		return
	}
	if !r.negative {
		r.negative = true
		r.trace.Imbalances = append(r.trace.Imbalances, Imbalance{
			Line:  index,
			Depth: r.depth,
			Kind:  ImbalanceNegative,
		})
	}
	if r.opts.ClampNegative {
		r.depth = 0
		r.negative = false
	}
}

func (r *reconstructor) indent() string {
	if r.depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", r.depth*r.opts.IndentWidth)
}
