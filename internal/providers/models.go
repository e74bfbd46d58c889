package providers

// Thumbnail represents a video thumbnail
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchResult represents a video in search results.
// Fields the provider did not send are left at their zero value.
type SearchResult struct {
	VideoID    string      `json:"videoId"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	AuthorID   string      `json:"authorId"`
	LengthText string      `json:"lengthText"`
	IsLive     bool        `json:"liveNow"`
	Thumbnails []Thumbnail `json:"videoThumbnails"`
}

// FirstThumbnail returns the url of the first thumbnail, or an empty string
func (s *SearchResult) FirstThumbnail() string {
	if len(s.Thumbnails) == 0 {
		return ""
	}
	return s.Thumbnails[0].URL
}
