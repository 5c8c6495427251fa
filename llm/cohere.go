package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"forumbot/persona"
)

const defaultCohereEndpoint = "https://api.cohere.com/v1/chat"

// CohereConfig wires the post-generation backend.
type CohereConfig struct {
	Endpoint    string  // defaults to the public chat endpoint
	Model       string  // defaults to command-r
	APIKey      string  // required
	Temperature float64 // defaults to 0.8
}

// CohereClient generates forum posts via Cohere's chat endpoint in JSON
// mode, so the title/content pair comes back as parseable structured
// output.
type CohereClient struct {
	endpoint    string
	model       string
	apiKey      string
	temperature float64
	httpClient  *http.Client
	limiter     *rate.Limiter
}

var _ PostGenerator = (*CohereClient)(nil)

// NewCohereClient builds a client from configuration.
func NewCohereClient(cfg CohereConfig) *CohereClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultCohereEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = "command-r"
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.8
	}

	return &CohereClient{
		endpoint:    endpoint,
		model:       model,
		apiKey:      cfg.APIKey,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
	}
}

// SetLimiter installs a rate limiter applied before every request. Batch
// runs use this to stay under the provider's request-per-minute cap.
func (c *CohereClient) SetLimiter(limiter *rate.Limiter) {
	c.limiter = limiter
}

type cohereChatRequest struct {
	Model          string               `json:"model"`
	Message        string               `json:"message"`
	Preamble       string               `json:"preamble"`
	Temperature    float64              `json:"temperature"`
	ResponseFormat cohereResponseFormat `json:"response_format"`
}

type cohereResponseFormat struct {
	Type   string         `json:"type"`
	Schema map[string]any `json:"schema,omitempty"`
}

type cohereChatResponse struct {
	Text string `json:"text"`
}

// GeneratePost asks Cohere for a persona-voiced forum post about the
// article. The response must carry non-empty title and content or an error
// is returned.
func (c *CohereClient) GeneratePost(ctx context.Context, articleTitle, articleText string, p persona.Persona) (*PostDraft, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("cohere client misconfigured: missing API key")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("limiter wait: %w", err)
		}
	}

	body, err := json.Marshal(cohereChatRequest{
		Model:       c.model,
		Message:     postMessage(articleTitle, articleText),
		Preamble:    postPreamble(p),
		Temperature: c.temperature,
		ResponseFormat: cohereResponseFormat{
			Type: "json_object",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":   map[string]any{"type": "string"},
					"content": map[string]any{"type": "string"},
				},
				"required": []string{"title", "content"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal cohere payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("cohere error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var chatResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode cohere response: %w", err)
	}

	var draft PostDraft
	if err := json.Unmarshal([]byte(chatResp.Text), &draft); err != nil {
		return nil, fmt.Errorf("cohere returned non-JSON output: %w", err)
	}
	if draft.Title == "" || draft.Content == "" {
		return nil, fmt.Errorf("cohere returned empty title or content")
	}

	return &draft, nil
}
