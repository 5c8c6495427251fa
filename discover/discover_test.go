package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarketauxSearch_ParsesResults verifies query parameters and response
// mapping
func TestMarketauxSearch_ParsesResults(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`{
			"data": [
				{
					"uuid": "abc-123",
					"title": "Reliance posts record profit",
					"url": "https://www.moneycontrol.com/news/x",
					"source": "moneycontrol.com",
					"published_at": "2025-07-22T06:00:00.000000Z"
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewMarketauxClient("token-1", 10)
	client.baseURL = srv.URL

	candidates, err := client.Search(context.Background(), "reliance")
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "abc-123", candidates[0].ID)
	assert.Equal(t, "https://www.moneycontrol.com/news/x", candidates[0].URL)

	assert.Equal(t, "token-1", gotQuery["api_token"])
	assert.Equal(t, "reliance", gotQuery["search"])
	assert.Equal(t, "equity", gotQuery["entity_types"])
	assert.Equal(t, "in", gotQuery["countries"])
	assert.Equal(t, "10", gotQuery["limit"])
	assert.NotEmpty(t, gotQuery["published_after"])
}

// TestMarketauxSearch_MissingToken verifies misconfiguration fails early
func TestMarketauxSearch_MissingToken(t *testing.T) {
	client := NewMarketauxClient("", 10)

	_, err := client.Search(context.Background(), "reliance")
	assert.Error(t, err)
}

// TestMarketauxSearch_HTTPError verifies error responses surface
func TestMarketauxSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"usage limit reached"}`, http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := NewMarketauxClient("token-1", 10)
	client.baseURL = srv.URL

	_, err := client.Search(context.Background(), "reliance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage limit reached")
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Moneycontrol Markets</title>
<item>
<title>Dreamfolks falls 5% as sellers turn active</title>
<link>https://www.moneycontrol.com/news/business/markets/dreamfolks-falls-5</link>
<guid>mc-13236498</guid>
<pubDate>Tue, 22 Jul 2025 06:30:00 +0000</pubDate>
</item>
<item>
<title>No link item</title>
</item>
</channel>
</rss>`

// TestFeedReader_Fetch verifies RSS items map to candidates and linkless
// items are skipped
func TestFeedReader_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFeed))
	}))
	defer srv.Close()

	candidates, err := NewFeedReader().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "mc-13236498", candidates[0].ID)
	assert.Equal(t, "Moneycontrol Markets", candidates[0].Source)
	assert.Equal(t, "2025-07-22T06:30:00Z", candidates[0].PublishedAt)
}

// TestFeedReader_BadFeed verifies parse failures surface
func TestFeedReader_BadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	_, err := NewFeedReader().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
