package scrape

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		compiled = append(compiled, regexp.MustCompile("(?im)"+e))
	}
	return compiled
}

// TestNormalize_RemovesBoilerplate verifies removal patterns strip from the
// matched phrase to end of line
func TestNormalize_RemovesBoilerplate(t *testing.T) {
	raw := "Reliance shares rose 5% today.\nAlso Read: ten stocks to watch this week\nAnalysts remain bullish."

	got := Normalize(raw, patterns(`Also Read:.*$`))

	assert.NotContains(t, got, "ten stocks to watch")
	assert.Contains(t, got, "Reliance shares rose 5% today.")
	assert.Contains(t, got, "Analysts remain bullish.")
}

// TestNormalize_CaseInsensitive verifies patterns match regardless of case
func TestNormalize_CaseInsensitive(t *testing.T) {
	raw := "Good quarter overall.\nALSO READ: something promotional"

	got := Normalize(raw, patterns(`Also Read:.*$`))

	assert.Equal(t, "Good quarter overall.", got)
}

// TestNormalize_CollapsesWhitespace verifies runs of whitespace become a
// single space and the result is trimmed
func TestNormalize_CollapsesWhitespace(t *testing.T) {
	raw := "  Markets   closed\n\n\nhigher  today.  "

	got := Normalize(raw, nil)

	assert.Equal(t, "Markets closed higher today.", got)
}

// TestNormalize_EmptyInput verifies empty input is a no-op
func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize("", patterns(`Disclaimer:.*$`)))
}

// TestNormalize_PatternsApplyInOrder verifies each pattern is applied
func TestNormalize_PatternsApplyInOrder(t *testing.T) {
	raw := "Body text.\nDisclaimer: not advice\nFollow us on Telegram"

	got := Normalize(raw, patterns(`Disclaimer:.*$`, `Follow us on.*$`))

	assert.Equal(t, "Body text.", got)
}
