package providers

import "context"

// Provider interface for video search providers, e.g. youtube
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}
