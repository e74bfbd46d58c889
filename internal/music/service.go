package music

import (
	"context"
	"fmt"

	"github.com/Lekuruu/tunescout/internal/geo"
	"github.com/Lekuruu/tunescout/internal/providers"
)

// Locator resolves an ip address to a location, empty ip means the caller's own address
type Locator interface {
	Locate(ctx context.Context, ip string) (*geo.Response, error)
}

type Logger interface {
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Service implements the search, location and trending operations.
// No method returns an error, failures are reported through the Envelope.
type Service struct {
	Provider providers.Provider
	Locator  Locator
	Logger   Logger
}

func NewService(provider providers.Provider, locator Locator, logger Logger) *Service {
	return &Service{
		Provider: provider,
		Locator:  locator,
		Logger:   logger,
	}
}

// Search forwards query to the video provider and returns up to limit records
func (s *Service) Search(ctx context.Context, query string, limit int) Envelope {
	limit = max(limit, 0)
	s.Logger.Debugf("Searching for '%s' (limit %d)", query, limit)

	results, err := s.Provider.Search(ctx, query, limit)
	if err != nil {
		s.Logger.Errorf("Search failed for query '%s': %v", query, err)
		return Failure(err)
	}

	records := NewRecords(results)
	if len(records) > limit {
		records = records[:limit]
	}
	return ResultsEnvelope(records)
}

// Locate resolves ip, or the caller's own address if ip is empty
func (s *Service) Locate(ctx context.Context, ip string) Envelope {
	s.Logger.Debugf("Resolving location for '%s'", ip)

	response, err := s.Locator.Locate(ctx, ip)
	if err != nil {
		s.Logger.Errorf("Location lookup failed for '%s': %v", ip, err)
		return Failure(err)
	}
	return LocationEnvelope(NewLocation(response))
}

// TrendingQueries returns the sub-queries issued for a country, country specific ones first
func TrendingQueries(countryCode string) []string {
	return []string{
		fmt.Sprintf("popular music %s", countryCode),
		fmt.Sprintf("trending songs %s", countryCode),
		"top hits 2024",
		"popular music today",
	}
}

// Trending runs every trending sub-query in order, requesting limit/4 videos each,
// and returns the concatenation truncated to limit.
// A failing sub-query fails the whole operation.
func (s *Service) Trending(ctx context.Context, countryCode string, limit int) Envelope {
	limit = max(limit, 0)
	queries := TrendingQueries(countryCode)
	perQuery := limit / len(queries)

	var records []Record
	for _, query := range queries {
		s.Logger.Debugf("Trending sub-query '%s' (limit %d)", query, perQuery)

		results, err := s.Provider.Search(ctx, query, perQuery)
		if err != nil {
			s.Logger.Errorf("Trending sub-query '%s' failed: %v", query, err)
			return Failure(err)
		}
		records = append(records, NewRecords(results)...)
	}

	if len(records) > limit {
		records = records[:limit]
	}
	return ResultsEnvelope(records)
}
