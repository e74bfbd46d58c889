package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const searchResponse = `{
	"contents": {
		"twoColumnSearchResultsRenderer": {
			"primaryContents": {
				"sectionListRenderer": {
					"contents": [
						{
							"itemSectionRenderer": {
								"contents": [
									{
										"videoRenderer": {
											"videoId": "vid1",
											"title": { "runs": [ { "text": "Track 1" } ] },
											"ownerText": { "runs": [ {
												"text": "Artist 1",
												"navigationEndpoint": { "browseEndpoint": { "browseId": "UC1" } }
											} ] },
											"thumbnail": { "thumbnails": [
												{ "url": "http://img/1-small.jpg", "width": 120, "height": 90 },
												{ "url": "http://img/1-large.jpg", "width": 480, "height": 360 }
											] },
											"lengthText": { "simpleText": "3:45" }
										}
									},
									{ "adSlotRenderer": {} },
									{
										"shelfRenderer": {
											"content": { "verticalListRenderer": { "items": [
												{
													"videoRenderer": {
														"videoId": "vid2",
														"title": { "runs": [ { "text": "Track 2" } ] },
														"longBylineText": { "runs": [ { "text": "Artist 2" } ] },
														"badges": [ { "metadataBadgeRenderer": { "label": "LIVE" } } ]
													}
												}
											] } }
										}
									},
									{
										"videoRenderer": {
											"videoId": "vid3",
											"title": { "simpleText": "Track 3" },
											"ownerText": { "runs": [ { "text": "Artist 3" } ] },
											"lengthText": { "simpleText": "1:02:03" }
										}
									}
								]
							}
						}
					]
				}
			}
		}
	}
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *YouTubeProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewYouTubeProvider(server.URL, "US", "en", 5*time.Second)
}

func TestSearch(t *testing.T) {
	var payload map[string]interface{}
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(searchResponse))
	})

	results, err := provider.Search(context.Background(), "lofi beats", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "lofi beats", payload["query"])
	assert.Equal(t, VideoSearchParams, payload["params"])
	client := payload["context"].(map[string]interface{})["client"].(map[string]interface{})
	assert.Equal(t, "US", client["gl"])
	assert.Equal(t, "en", client["hl"])

	first := results[0]
	assert.Equal(t, "vid1", first.VideoID)
	assert.Equal(t, "Track 1", first.Title)
	assert.Equal(t, "Artist 1", first.Author)
	assert.Equal(t, "UC1", first.AuthorID)
	assert.Equal(t, "3:45", first.LengthText)
	assert.Equal(t, "http://img/1-small.jpg", first.FirstThumbnail())
	assert.False(t, first.IsLive)

	second := results[1]
	assert.Equal(t, "vid2", second.VideoID)
	assert.Equal(t, "Artist 2", second.Author)
	assert.Empty(t, second.LengthText)
	assert.Empty(t, second.FirstThumbnail())
	assert.True(t, second.IsLive)

	assert.Equal(t, "Track 3", results[2].Title)
	assert.Equal(t, "1:02:03", results[2].LengthText)
}

func TestSearchRespectsLimit(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchResponse))
	})

	results, err := provider.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "vid1", results[0].VideoID)
	assert.Equal(t, "vid2", results[1].VideoID)
}

func TestSearchZeroLimitSkipsRequest(t *testing.T) {
	called := false
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	results, err := provider.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
		is       error
	}{
		{"upstream status", http.StatusTooManyRequests, `slow down`, "API returned status 429", nil},
		{"invalid json", http.StatusOK, `{not json`, "failed to decode response", nil},
		{"missing contents", http.StatusOK, `{"responseContext": {}}`, "", ErrUnexpectedResponse},
		{"missing section list", http.StatusOK, `{"contents": {"twoColumnSearchResultsRenderer": {}}}`, "", ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			results, err := provider.Search(context.Background(), "query", 5)
			require.Error(t, err)
			assert.Nil(t, results)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestSearchEmptyResults(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"contents": {"twoColumnSearchResultsRenderer": {"primaryContents": {"sectionListRenderer": {"contents": []}}}}}`))
	})

	results, err := provider.Search(context.Background(), "nothing here", 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider := NewYouTubeProvider(server.URL, "US", "en", time.Second)
	server.Close()

	_, err := provider.Search(context.Background(), "query", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestSearchLimiter(t *testing.T) {
	calls := 0
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(searchResponse))
	})
	provider.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := provider.Search(context.Background(), "first", 5)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = provider.Search(ctx, "second", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait failed")
	assert.Equal(t, 1, calls)
}
