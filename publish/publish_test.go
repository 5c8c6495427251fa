package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumbot"
)

func testDocument() *forumbot.Document {
	return &forumbot.Document{
		Posts: []forumbot.GeneratedPost{{
			TempPostID: "post_001",
			Title:      "Nifty 18,500: Support or Trap?",
			Content:    "Watching the weekly close carefully. #NIFTY",
			Topic:      "NIFTY",
			Username:   "ChartChitra",
			CreatedAt:  "2025-07-22T08:15:00Z",
			Comments: []forumbot.GeneratedComment{{
				TempCommentID: "comment_001",
				Body:          "Support has held three times already.",
				Username:      "SwingSuresh",
				CreatedAt:     "2025-07-22T09:40:00Z",
			}},
		}},
	}
}

// TestBulkUpload_Success verifies the wire shape and response parsing
func TestBulkUpload_Success(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody forumbot.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(UploadResult{
			Success:    true,
			Total:      1,
			Successful: 1,
			Results: []UploadItemResult{
				{Status: "success", PostID: "7731", CommentsCreated: 1},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")

	result, err := client.BulkUpload(context.Background(), testDocument())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Successful)
	require.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.Results[0].CommentsCreated)

	assert.Equal(t, "/api/external/bulk-upload-posts-comments", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	// The uploaded shape is the document contract, field for field.
	require.Len(t, gotBody.Posts, 1)
	assert.Equal(t, "post_001", gotBody.Posts[0].TempPostID)
	assert.Equal(t, "comment_001", gotBody.Posts[0].Comments[0].TempCommentID)
}

// TestBulkUpload_HTTPError verifies non-200 responses carry the body
// snippet
func TestBulkUpload_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong-key")

	_, err := client.BulkUpload(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

// TestBulkUpload_MissingKey verifies misconfiguration fails before any
// network call
func TestBulkUpload_MissingKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "")

	_, err := client.BulkUpload(context.Background(), testDocument())
	assert.Error(t, err)
}
