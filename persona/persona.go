// Package persona holds the static collection of synthetic author profiles
// that voice generated posts and replies.
package persona

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Persona is a named synthetic author with the style attributes the
// generators weave into their prompts.
type Persona struct {
	Name           string   `yaml:"name" json:"name"`
	Style          string   `yaml:"style" json:"style"`
	PostTone       string   `yaml:"postTone" json:"postTone"`
	ReplyTone      string   `yaml:"replyTone" json:"replyTone"`
	Bio            string   `yaml:"bio" json:"bio"`
	FocusStocks    []string `yaml:"focusStocks" json:"focusStocks"`
	SignatureMoves []string `yaml:"signatureMoves" json:"signatureMoves"`
}

// Store is the read-only persona collection, loaded once at startup. It
// needs at least two entries: one author plus at least one distinct
// commenter.
type Store struct {
	personas []Persona
}

// NewStore validates and wraps a persona list.
func NewStore(personas []Persona) (*Store, error) {
	if len(personas) < 2 {
		return nil, fmt.Errorf("need at least 2 personas, got %d", len(personas))
	}
	return &Store{personas: personas}, nil
}

// Load reads personas from a YAML file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var personas []Persona
	if err := yaml.Unmarshal(data, &personas); err != nil {
		return nil, fmt.Errorf("failed to parse persona file: %w", err)
	}

	return NewStore(personas)
}

// Len returns the number of personas.
func (s *Store) Len() int {
	return len(s.personas)
}

// All returns the personas in load order.
func (s *Store) All() []Persona {
	return s.personas
}

// PickAuthor selects one persona uniformly at random as the post author.
func (s *Store) PickAuthor(rng *rand.Rand) Persona {
	return s.personas[rng.Intn(len(s.personas))]
}

// PickCommenters selects up to n distinct personas, excluding the author,
// uniformly at random without replacement. Fewer are returned when the
// eligible pool is smaller than n.
func (s *Store) PickCommenters(rng *rand.Rand, authorName string, n int) []Persona {
	eligible := make([]Persona, 0, len(s.personas))
	for _, p := range s.personas {
		if p.Name != authorName {
			eligible = append(eligible, p)
		}
	}

	if n > len(eligible) {
		n = len(eligible)
	}

	picked := make([]Persona, 0, n)
	for _, idx := range rng.Perm(len(eligible))[:n] {
		picked = append(picked, eligible[idx])
	}
	return picked
}
