// Package discover finds candidate article URLs to feed the pipeline,
// either from a market-news search API or from source RSS feeds.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultMarketauxURL = "https://api.marketaux.com/v1/news/all"

// Candidate is one discovered article, ready for topic selection and
// processing.
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// MarketauxClient searches the Marketaux news API for recent equity news.
type MarketauxClient struct {
	baseURL    string
	apiToken   string
	limit      int
	httpClient *http.Client
}

// NewMarketauxClient creates a search client. Limit defaults to 10.
func NewMarketauxClient(apiToken string, limit int) *MarketauxClient {
	if limit <= 0 {
		limit = 10
	}
	return &MarketauxClient{
		baseURL:    defaultMarketauxURL,
		apiToken:   apiToken,
		limit:      limit,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type marketauxResponse struct {
	Data []struct {
		UUID        string `json:"uuid"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// Search returns recent Indian-equity news for the query, published within
// the last three days.
func (c *MarketauxClient) Search(ctx context.Context, query string) ([]Candidate, error) {
	if c.apiToken == "" {
		return nil, fmt.Errorf("marketaux client misconfigured: missing API token")
	}

	params := url.Values{
		"api_token":       {c.apiToken},
		"search":          {query},
		"entity_types":    {"equity"},
		"language":        {"en"},
		"countries":       {"in"},
		"limit":           {fmt.Sprintf("%d", c.limit)},
		"published_after": {time.Now().AddDate(0, 0, -3).Format("2006-01-02T15:04:05")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketaux request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("marketaux error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed marketauxResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode marketaux response: %w", err)
	}

	candidates := make([]Candidate, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		candidates = append(candidates, Candidate{
			ID:          item.UUID,
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: item.PublishedAt,
		})
	}
	return candidates, nil
}
