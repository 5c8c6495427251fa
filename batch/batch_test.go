package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumbot"
	"forumbot/topics"
)

type fakePipeline struct {
	failURLs map[string]bool
	calls    []string
}

func (f *fakePipeline) Process(ctx context.Context, url, topic string) (*forumbot.Document, error) {
	f.calls = append(f.calls, url)
	if f.failURLs[url] {
		return nil, errors.New("extraction failed")
	}
	return &forumbot.Document{
		Posts: []forumbot.GeneratedPost{{
			TempPostID: "post_001",
			Title:      "Post for " + url,
			Topic:      topic,
			Username:   "ValueVikram",
		}},
	}, nil
}

func testProcessor() (*Processor, *fakePipeline) {
	pipeline := &fakePipeline{failURLs: map[string]bool{}}
	vocab := topics.New([]string{"NIFTY", "RELIANCE", "TCS"})
	return NewProcessor(pipeline, vocab), pipeline
}

// TestProcessItems_MixedResults verifies bad rows are skipped while good
// rows succeed
func TestProcessItems_MixedResults(t *testing.T) {
	p, pipeline := testProcessor()
	pipeline.failURLs["https://example.com/broken"] = true

	result := p.ProcessItems(context.Background(), []Item{
		{URL: "https://example.com/a", Topic: "NIFTY"},
		{URL: "https://example.com/broken", Topic: "TCS"},
		{URL: "", Topic: "NIFTY"},
		{URL: "https://example.com/b", Topic: "BITCOIN"},
		{URL: "https://example.com/c", Topic: "RELIANCE"},
	})

	assert.Equal(t, 2, result.SuccessCount)
	assert.Len(t, result.Errors, 3)
	assert.Len(t, result.Document.Posts, 2)
	assert.NotEmpty(t, result.RunID)

	assert.Contains(t, result.Errors[0], "failed to process https://example.com/broken")
	assert.Contains(t, result.Errors[1], "empty URL or topic")
	assert.Contains(t, result.Errors[2], `invalid topic "BITCOIN"`)
}

// TestProcessItems_InvalidTopicNeverReachesPipeline verifies validation
// happens before processing
func TestProcessItems_InvalidTopicNeverReachesPipeline(t *testing.T) {
	p, pipeline := testProcessor()

	p.ProcessItems(context.Background(), []Item{
		{URL: "https://example.com/a", Topic: "DOGECOIN"},
	})

	assert.Empty(t, pipeline.calls)
}

// TestProcessCSV_HappyPath verifies CSV parsing with the standard header
func TestProcessCSV_HappyPath(t *testing.T) {
	p, _ := testProcessor()
	csvData := "topic,url\nNIFTY,https://example.com/a\nRELIANCE,https://example.com/b\n"

	result, err := p.ProcessCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Document.Posts, 2)
}

// TestProcessCSV_ColumnOrder verifies columns may appear in any order
func TestProcessCSV_ColumnOrder(t *testing.T) {
	p, _ := testProcessor()
	csvData := "url,topic\nhttps://example.com/a,TCS\n"

	result, err := p.ProcessCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, "TCS", result.Document.Posts[0].Topic)
}

// TestProcessCSV_MissingColumns verifies a malformed header is a hard error
func TestProcessCSV_MissingColumns(t *testing.T) {
	p, _ := testProcessor()

	_, err := p.ProcessCSV(context.Background(), strings.NewReader("ticker,link\nNIFTY,https://example.com\n"))

	assert.Error(t, err)
}

// TestProcessCSV_RowFailuresDoNotAbort verifies one failing row leaves the
// rest of the batch intact
func TestProcessCSV_RowFailuresDoNotAbort(t *testing.T) {
	p, pipeline := testProcessor()
	pipeline.failURLs["https://example.com/bad"] = true
	csvData := "topic,url\nNIFTY,https://example.com/bad\nTCS,https://example.com/good\n"

	result, err := p.ProcessCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "https://example.com/bad")
}
