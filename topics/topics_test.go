package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassify_DirectSubstring verifies a topic mentioned verbatim wins
func TestClassify_DirectSubstring(t *testing.T) {
	vocab := New([]string{"RELIANCE", "NIFTY", "TCS"})

	got := vocab.Classify("RELIANCE JUMPS 5% ON STRONG RESULTS")

	assert.Equal(t, "RELIANCE", got)
}

// TestClassify_DefaultFallback verifies unmatched content falls back to the
// index topic
func TestClassify_DefaultFallback(t *testing.T) {
	vocab := New([]string{"RELIANCE", "NIFTY"})

	got := vocab.Classify("MARKET OUTLOOK TODAY")

	assert.Equal(t, "NIFTY", got)
}

// TestClassify_CaseInsensitive verifies lowercase content still matches
func TestClassify_CaseInsensitive(t *testing.T) {
	vocab := New([]string{"TCS", "NIFTY"})

	got := vocab.Classify("tcs announced a buyback this morning")

	assert.Equal(t, "TCS", got)
}

// TestClassify_FirstMatchWins verifies stored order decides when multiple
// topics appear
func TestClassify_FirstMatchWins(t *testing.T) {
	vocab := New([]string{"TCS", "RELIANCE"})

	got := vocab.Classify("RELIANCE and TCS both rallied")

	assert.Equal(t, "TCS", got)
}

// TestClassify_SuffixStripping verifies the token pass matches topics after
// stripping corporate suffixes
func TestClassify_SuffixStripping(t *testing.T) {
	vocab := New([]string{"COALINDIA", "HINDUNILVR"})

	got := vocab.Classify("COAL output hit a record, says COALINDIA chairman")
	assert.Equal(t, "COALINDIA", got, "direct substring should match first")

	got = vocab.Classify("Strong monsoon lifts COAL despatches this quarter")
	assert.Equal(t, "COALINDIA", got, "token COAL should match COALINDIA minus suffix")
}

// TestClassify_AlwaysInVocabularyOrDefault verifies totality
func TestClassify_AlwaysInVocabularyOrDefault(t *testing.T) {
	vocab := New([]string{"RELIANCE", "TCS", "INFY"})
	inputs := []string{
		"",
		"nothing relevant here",
		"INFY beats estimates",
		"🚀🚀🚀",
	}

	for _, in := range inputs {
		got := vocab.Classify(in)
		assert.True(t, vocab.Contains(got) || got == DefaultTopic,
			"classify(%q) returned out-of-vocabulary topic %q", in, got)
	}
}

// TestLoad_FromYAML verifies vocabulary loading and order preservation
func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[NIFTY, RELIANCE, TCS]\n"), 0644))

	vocab, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"NIFTY", "RELIANCE", "TCS"}, vocab.Topics())
	assert.True(t, vocab.Contains("TCS"))
	assert.False(t, vocab.Contains("BITCOIN"))
}

// TestLoad_EmptyFile verifies an empty vocabulary is rejected
func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
