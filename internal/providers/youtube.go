package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Innertube API defaults
const (
	InnertubeSearchUrl = "https://www.youtube.com/youtubei/v1/search"
	InnertubeClient    = "WEB"
	InnertubeVersion   = "2.20230615.09.00"

	// Restricts search results to videos
	VideoSearchParams = "EgIQAQ=="
)

// ErrUnexpectedResponse is returned when the search response lacks its expected structure
var ErrUnexpectedResponse = errors.New("unexpected search response")

// YouTubeProvider implements Provider using YouTube's Innertube API
type YouTubeProvider struct {
	Http      *http.Client
	SearchUrl string
	Country   string
	Language  string

	// Limiter throttles outbound requests when set
	Limiter *rate.Limiter
}

// NewYouTubeProvider creates a new YouTube provider
func NewYouTubeProvider(searchUrl, country, language string, timeout time.Duration) *YouTubeProvider {
	if searchUrl == "" {
		searchUrl = InnertubeSearchUrl
	}
	return &YouTubeProvider{
		Http:      &http.Client{Timeout: timeout},
		SearchUrl: searchUrl,
		Country:   country,
		Language:  language,
	}
}

// performInnertubeRequest sends a POST request to an Innertube endpoint and decodes the response into out
func (p *YouTubeProvider) performInnertubeRequest(ctx context.Context, endpoint string, payload map[string]interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("X-YouTube-Client-Name", "1")
	req.Header.Set("X-YouTube-Client-Version", InnertubeVersion)

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	resp, err := p.Http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Search performs a video search, returning at most maxResults videos
func (p *YouTubeProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		return []SearchResult{}, nil
	}

	payload := map[string]interface{}{
		"context": getClientContext(p.Country, p.Language),
		"query":   query,
		"params":  VideoSearchParams,
	}

	var response innertubeSearchResponse
	if err := p.performInnertubeRequest(ctx, p.SearchUrl, payload, &response); err != nil {
		return nil, err
	}

	return parseSearchResults(&response, maxResults)
}

// parseSearchResults flattens the section list into at most maxResults videos
func parseSearchResults(response *innertubeSearchResponse, maxResults int) ([]SearchResult, error) {
	if response.Contents == nil {
		return nil, ErrUnexpectedResponse
	}

	sections := response.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer
	if sections == nil {
		return nil, ErrUnexpectedResponse
	}

	results := extractVideosFromItems(sections.Contents, maxResults)
	if results == nil {
		results = []SearchResult{}
	}
	return results, nil
}

// extractVideosFromItems recursively extracts videos from item sections and shelves
func extractVideosFromItems(items []innertubeItem, maxResults int) []SearchResult {
	var results []SearchResult

	for _, item := range items {
		if len(results) >= maxResults {
			break
		}
		remaining := maxResults - len(results)

		switch {
		case item.VideoRenderer != nil:
			if result := item.VideoRenderer.searchResult(); result.VideoID != "" {
				results = append(results, result)
			}
		case item.ItemSectionRenderer != nil:
			results = append(results, extractVideosFromItems(item.ItemSectionRenderer.Contents, remaining)...)
		case item.ShelfRenderer != nil:
			results = append(results, extractVideosFromItems(item.ShelfRenderer.Content.VerticalListRenderer.Items, remaining)...)
		}
	}

	return results
}

func getClientContext(country string, language string) map[string]interface{} {
	return map[string]interface{}{
		"client": map[string]interface{}{
			"clientName":    InnertubeClient,
			"clientVersion": InnertubeVersion,
			"hl":            language,
			"gl":            country,
		},
	}
}
