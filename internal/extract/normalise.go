package extract

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// NormaliseLines joins the fragments of one page with newlines and returns
// the resulting lines with every whitespace run collapsed to a single space.
// Lines that are empty after trimming are dropped.
func NormaliseLines(fragments []string) []string {
	if len(fragments) == 0 {
		return nil
	}

	var lines []string
	for _, raw := range lineBreak.Split(strings.Join(fragments, "\n"), -1) {
		if line := NormaliseText(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// NormaliseText collapses all whitespace in s, newlines included, to single
// spaces and trims the result.
func NormaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
