package scrape

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\s*\n`)
)

// Normalize strips boilerplate from extracted article text and collapses
// whitespace. Removal patterns are applied in order, then any whitespace
// run becomes a single space, blank-line runs become a single newline, and
// the result is trimmed. Empty input is a no-op.
func Normalize(raw string, patterns []*regexp.Regexp) string {
	cleaned := raw

	for _, pattern := range patterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = blankLineRun.ReplaceAllString(cleaned, "\n")

	return strings.TrimSpace(cleaned)
}
