package formatter

import (
	"strings"
)

// Collapse normalizes blank lines according to policy.
//
// Every line is trimmed of trailing whitespace, so a blank line that was
// given indentation comes out empty. Runs of blank lines shrink to one.
// StripLeadingThenCollapse additionally drops the blank lines at the start
// of the document.
func Collapse(lines []string, policy BlankPolicy) []string {
	if policy == StripLeadingThenCollapse {
		lines = stripLeadingBlanks(lines)
	}
	if len(lines) == 0 {
		return nil
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRightFunc(line, isSpace)
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func stripLeadingBlanks(lines []string) []string {
	for i, line := range lines {
		if !isBlank(line) {
			return lines[i:]
		}
	}
	return nil
}

func isBlank(line string) bool {
	return strings.TrimFunc(line, isSpace) == ""
}
