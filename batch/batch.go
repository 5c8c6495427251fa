// Package batch processes many (topic, URL) pairs through the assembly
// pipeline, collecting per-item errors so one bad row never sinks a run.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"forumbot"
	"forumbot/logger"
	"forumbot/topics"
)

// Pipeline is the single-URL processing boundary. *assemble.Assembler
// satisfies it.
type Pipeline interface {
	Process(ctx context.Context, url, forcedTopic string) (*forumbot.Document, error)
}

// Item is one unit of batch work: an article URL with its forced topic.
type Item struct {
	URL   string
	Topic string
}

// Result reports a batch run: the aggregated document, how many items
// succeeded, and one message per failed item.
type Result struct {
	RunID        string             `json:"run_id"`
	SuccessCount int                `json:"success_count"`
	Errors       []string           `json:"errors,omitempty"`
	Document     *forumbot.Document `json:"document"`
}

// Processor runs batches against a pipeline, validating topics against the
// vocabulary before processing.
type Processor struct {
	pipeline Pipeline
	vocab    *topics.Vocabulary
}

// NewProcessor creates a batch processor.
func NewProcessor(pipeline Pipeline, vocab *topics.Vocabulary) *Processor {
	return &Processor{pipeline: pipeline, vocab: vocab}
}

// ProcessItems runs each item through the pipeline. Items with empty fields
// or out-of-vocabulary topics are recorded as errors and skipped; pipeline
// failures likewise. Successful documents are merged into one.
func (p *Processor) ProcessItems(ctx context.Context, items []Item) *Result {
	result := &Result{
		RunID:    uuid.NewString(),
		Document: &forumbot.Document{Posts: []forumbot.GeneratedPost{}},
	}

	for i, item := range items {
		url := strings.TrimSpace(item.URL)
		topic := strings.TrimSpace(item.Topic)

		if url == "" || topic == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: empty URL or topic", i+1))
			continue
		}
		if !p.vocab.Contains(topic) {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: invalid topic %q", i+1, topic))
			continue
		}

		doc, err := p.pipeline.Process(ctx, url, topic)
		if err != nil {
			logger.Log.Warnf("batch item %d failed: %v", i+1, err)
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: failed to process %s: %v", i+1, url, err))
			continue
		}

		result.Document.Posts = append(result.Document.Posts, doc.Posts...)
		result.SuccessCount++
	}

	return result
}

// ProcessCSV reads rows from a CSV with "topic" and "url" columns (any
// column order, extra columns ignored) and processes them as a batch. The
// error return covers unreadable input only; row-level failures land in
// Result.Errors.
func (p *Processor) ProcessCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	topicCol, urlCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "topic":
			topicCol = i
		case "url":
			urlCol = i
		}
	}
	if topicCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf(`CSV must contain "topic" and "url" columns`)
	}

	var items []Item
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		item := Item{}
		if topicCol < len(row) {
			item.Topic = row[topicCol]
		}
		if urlCol < len(row) {
			item.URL = row[urlCol]
		}
		items = append(items, item)
	}

	return p.ProcessItems(ctx, items), nil
}
