// Package topics maps free-text post content to a fixed vocabulary of
// market-instrument labels.
package topics

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTopic is the broad market-index fallback used when no vocabulary
// entry matches.
const DefaultTopic = "NIFTY"

var (
	tokenPattern    = regexp.MustCompile(`\b[A-Z0-9]+\b`)
	corporateSuffix = regexp.MustCompile(`(LTD|LIMITED|INDIA|&CO)$`)
)

// Vocabulary is the ordered set of valid topic strings. Classification
// iterates in stored order, so the order in the source file is significant.
type Vocabulary struct {
	topics []string
	set    map[string]struct{}
}

// New builds a vocabulary from an ordered topic list.
func New(topics []string) *Vocabulary {
	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		set[t] = struct{}{}
	}
	return &Vocabulary{topics: topics, set: set}
}

// Load reads the topic list from a YAML file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topics file: %w", err)
	}

	var topics []string
	if err := yaml.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("failed to parse topics file: %w", err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics file %s is empty", path)
	}

	return New(topics), nil
}

// Topics returns the vocabulary in stored order.
func (v *Vocabulary) Topics() []string {
	return v.topics
}

// Contains reports whether the topic is a vocabulary member. Used by
// callers to validate forced topics before processing.
func (v *Vocabulary) Contains(topic string) bool {
	_, ok := v.set[topic]
	return ok
}

// Classify returns the first vocabulary topic mentioned in the content.
// Matching is two-pass: a direct substring scan over the uppercased content
// first, then a whole-token scan with common corporate suffixes stripped
// from the topic. First match wins in both passes; DefaultTopic is returned
// when nothing matches. Always returns a vocabulary member.
func (v *Vocabulary) Classify(content string) string {
	upper := strings.ToUpper(content)

	for _, topic := range v.topics {
		if strings.Contains(upper, topic) {
			return topic
		}
	}

	tokens := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(upper, -1) {
		tokens[tok] = struct{}{}
	}
	for _, topic := range v.topics {
		base := strings.TrimSpace(corporateSuffix.ReplaceAllString(topic, ""))
		if base == "" {
			continue
		}
		if _, ok := tokens[base]; ok {
			return topic
		}
	}

	return DefaultTopic
}
