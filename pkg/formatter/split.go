package formatter

import (
	"strings"
	"unicode"
)

// Split breaks text into logical lines.
//
// Each physical line is trimmed of trailing whitespace and then split on
// every occurrence of delim. Empty fragments between adjacent delimiters are
// kept. A trailing newline terminates the last line rather than starting a
// new, empty one, so Split("", d) returns no lines.
func Split(text string, delim rune) []string {
	lines, _ := splitLines(text, delim)
	return lines
}

// splitLines is Split that also returns, for every logical line, the
// 0-based index of the physical line it came from.
func splitLines(text string, delim rune) ([]string, []int) {
	if text == "" {
		return nil, nil
	}
	text = strings.TrimSuffix(text, "\n")

	physical := strings.Split(text, "\n")
	lines := make([]string, 0, len(physical))
	origins := make([]int, 0, len(physical))
	sep := string(delim)
	for i, line := range physical {
		line = strings.TrimRightFunc(line, isSpace)
		for _, frag := range strings.Split(line, sep) {
			lines = append(lines, frag)
			origins = append(origins, i)
		}
	}
	return lines, origins
}

// isSpace reports whether r is whitespace: unicode.IsSpace plus the ASCII
// information separators U+001C through U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
