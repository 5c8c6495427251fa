// Package publish uploads assembled documents to the downstream forum's
// bulk-upload endpoint. The document shape is a hard contract with that
// consumer and must not drift.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"forumbot"
)

const uploadPath = "/api/external/bulk-upload-posts-comments"

// Client talks to the external forum API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a publish client for the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UploadResult is the bulk-upload response.
type UploadResult struct {
	Success    bool               `json:"success"`
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []UploadItemResult `json:"results"`
}

// UploadItemResult reports one post's outcome.
type UploadItemResult struct {
	Status          string `json:"status"`
	PostID          string `json:"post_id,omitempty"`
	CommentsCreated int    `json:"comments_created"`
	Error           string `json:"error,omitempty"`
}

// BulkUpload publishes the document. Non-2xx responses are errors carrying
// the status and a snippet of the body.
func (c *Client) BulkUpload(ctx context.Context, doc *forumbot.Document) (*UploadResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("publish client misconfigured: missing API key")
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bulk upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("bulk upload error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &result, nil
}
