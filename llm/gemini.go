package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"forumbot/persona"
)

// GeminiConfig wires the reply-generation backend.
type GeminiConfig struct {
	APIKey string // if empty, uses GOOGLE_API_KEY env var
	Model  string // defaults to gemini-1.5-flash-latest
}

// GeminiClient generates reply comments via Google GenAI. Replies are
// free-text; callers decide how to handle failures.
type GeminiClient struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

var _ ReplyGenerator = (*GeminiClient)(nil)

// NewGeminiClient creates a reply generator backed by Gemini.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash-latest"
	}

	return &GeminiClient{client: client, model: model}, nil
}

// SetLimiter installs a rate limiter applied before every request.
func (g *GeminiClient) SetLimiter(limiter *rate.Limiter) {
	g.limiter = limiter
}

// GenerateReply produces a short persona-voiced reply to the post content.
func (g *GeminiClient) GenerateReply(ctx context.Context, postContent string, p persona.Persona) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("limiter wait: %w", err)
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(replyPrompt(postContent, p)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			reply += part.Text
		}
	}

	return strings.TrimSpace(reply), nil
}

// Model returns the model name in use.
func (g *GeminiClient) Model() string {
	return g.model
}
