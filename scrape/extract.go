// Package scrape fetches news-article pages and turns them into clean
// title+text pairs. Extraction tries source-aware CSS selectors first and
// falls back to a generic readability pass.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"forumbot/logger"
	"forumbot/sources"
)

// ErrNoArticle is returned when neither extraction strategy produced usable
// text. Callers should treat it as "this URL could not be processed" rather
// than a fatal condition.
var ErrNoArticle = errors.New("no article content extracted")

// Article is the extraction result: a title (possibly empty) and the cleaned
// body text.
type Article struct {
	Title string
	Text  string
}

// Containers commonly holding the main article body, tried in order. The
// first selector yielding non-empty text wins.
var defaultContainerSelectors = []string{
	"article",
	".article-content",
	".story-content",
	`[itemprop="articleBody"]`,
	".entry-content",
	"#article-content",
	".content-body",
}

// Title candidates, tried in order. Empty title is acceptable.
var defaultTitleSelectors = []string{
	"h1",
	`[itemprop="headline"]`,
	".article-title",
	".entry-title",
}

// Browser-plausible request identities; one is picked at random per fetch so
// repeated requests don't present a single fingerprint.
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/114.0.1823.67 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/114.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
}

// Extractor fetches article pages and extracts readable text. Safe for
// concurrent use.
type Extractor struct {
	registry           *sources.Registry
	client             *http.Client
	containerSelectors []string
	titleSelectors     []string
	userAgents         []string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewExtractor creates an extractor with the default selector lists and a
// bounded request timeout. TLS verification stays enabled.
func NewExtractor(registry *sources.Registry) *Extractor {
	return &Extractor{
		registry:           registry,
		client:             &http.Client{Timeout: 15 * time.Second},
		containerSelectors: defaultContainerSelectors,
		titleSelectors:     defaultTitleSelectors,
		userAgents:         browserUserAgents,
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSelectors overrides the container and title selector lists. New sources
// show up over time, so the priority lists are configuration, not constants.
func (e *Extractor) SetSelectors(containers, titles []string) {
	if len(containers) > 0 {
		e.containerSelectors = containers
	}
	if len(titles) > 0 {
		e.titleSelectors = titles
	}
}

// Extract fetches the URL and returns its title and normalized body text.
// It tries the selector-driven strategy first, then a readability fallback,
// and returns ErrNoArticle when both fail. All fetch and parse failures are
// converted into that error; nothing panics past this boundary.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Article, error) {
	profile := e.registry.ProfileFor(rawURL)

	if doc, err := e.fetchHTML(ctx, rawURL); err == nil {
		if article := e.fromSelectors(doc, profile); article != nil {
			return article, nil
		}
	} else {
		logger.Log.Debugf("primary fetch failed for %s: %v", rawURL, err)
	}

	article, err := e.readabilityFallback(ctx, rawURL, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoArticle, rawURL)
	}

	return article, nil
}

// fetchHTML performs a GET with a randomized browser identity and parses the
// body with goquery. Non-2xx responses are errors.
func (e *Extractor) fetchHTML(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// fromSelectors walks the container selector list and extracts the first
// non-empty article body, plus a best-effort title. Returns nil when no
// container yields usable text.
func (e *Extractor) fromSelectors(doc *goquery.Document, profile sources.Profile) *Article {
	var bodyText string
	for _, selector := range e.containerSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if text := joinedText(container); text != "" {
			bodyText = text
			break
		}
	}

	if bodyText == "" {
		return nil
	}

	title := ""
	for _, selector := range e.titleSelectors {
		heading := doc.Find(selector).First()
		if heading.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(heading.Text()); text != "" {
			title = text
			break
		}
	}

	text := Normalize(bodyText, profile.RemovalPatterns)
	if text == "" {
		return nil
	}

	return &Article{Title: title, Text: text}
}

// readabilityFallback re-downloads the page and runs the generic
// readability algorithm over it.
func (e *Extractor) readabilityFallback(ctx context.Context, rawURL string, profile sources.Profile) (*Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse failed: %w", err)
	}

	text := Normalize(parsed.TextContent, profile.RemovalPatterns)
	if text == "" {
		return nil, fmt.Errorf("readability produced no text")
	}

	return &Article{Title: strings.TrimSpace(parsed.Title), Text: text}, nil
}

func (e *Extractor) userAgent() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userAgents[e.rng.Intn(len(e.userAgents))]
}

// joinedText collects the text of the selection's child nodes separated by
// newlines, so paragraph boundaries survive until normalization.
func joinedText(s *goquery.Selection) string {
	var lines []string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if text := strings.TrimSpace(child.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
