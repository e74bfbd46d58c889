package music

import (
	"github.com/Lekuruu/tunescout/internal/geo"
	"github.com/Lekuruu/tunescout/internal/providers"
)

// DefaultDuration is used when the provider did not report a duration
const DefaultDuration = "0:00"

// Record is the fixed shape every search result is reduced to
type Record struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}

// Location is the fixed shape of a geolocation lookup
type Location struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
}

// NewRecord maps a provider search result into a Record.
// Missing and empty durations both fall back to DefaultDuration.
func NewRecord(result providers.SearchResult) Record {
	duration := result.LengthText
	if duration == "" {
		duration = DefaultDuration
	}

	return Record{
		VideoID:   result.VideoID,
		Title:     result.Title,
		Artist:    result.Author,
		Thumbnail: result.FirstThumbnail(),
		Duration:  duration,
	}
}

// NewRecords maps a list of provider results, never returning nil
func NewRecords(results []providers.SearchResult) []Record {
	records := make([]Record, 0, len(results))
	for _, result := range results {
		records = append(records, NewRecord(result))
	}
	return records
}

func NewLocation(response *geo.Response) Location {
	if response == nil {
		return Location{}
	}
	return Location{
		City:        response.City,
		Country:     response.CountryName,
		CountryCode: response.CountryCode,
		Region:      response.Region,
	}
}
