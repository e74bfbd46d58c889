package providers

import "strings"

// Subset of the Innertube search response that the provider reads.
// Renderers it does not know about decode into empty items and are skipped.

type innertubeSearchResponse struct {
	Contents *struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer *struct {
					Contents []innertubeItem `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type innertubeItem struct {
	VideoRenderer       *videoRenderer `json:"videoRenderer"`
	ItemSectionRenderer *struct {
		Contents []innertubeItem `json:"contents"`
	} `json:"itemSectionRenderer"`
	ShelfRenderer *struct {
		Content struct {
			VerticalListRenderer struct {
				Items []innertubeItem `json:"items"`
			} `json:"verticalListRenderer"`
		} `json:"content"`
	} `json:"shelfRenderer"`
}

type videoRenderer struct {
	VideoID        string        `json:"videoId"`
	Title          innertubeText `json:"title"`
	OwnerText      innertubeText `json:"ownerText"`
	LongBylineText innertubeText `json:"longBylineText"`
	LengthText     innertubeText `json:"lengthText"`
	Thumbnail      struct {
		Thumbnails []Thumbnail `json:"thumbnails"`
	} `json:"thumbnail"`
	Badges []struct {
		MetadataBadgeRenderer struct {
			Label string `json:"label"`
		} `json:"metadataBadgeRenderer"`
	} `json:"badges"`
}

// innertubeText is either {"simpleText": "..."} or {"runs": [{"text": "..."}]}
type innertubeText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text               string `json:"text"`
		NavigationEndpoint struct {
			BrowseEndpoint struct {
				BrowseID string `json:"browseId"`
			} `json:"browseEndpoint"`
		} `json:"navigationEndpoint"`
	} `json:"runs"`
}

// String returns the first run's text, falling back to simpleText
func (t innertubeText) String() string {
	if len(t.Runs) > 0 {
		return t.Runs[0].Text
	}
	return t.SimpleText
}

// BrowseID returns the channel id linked from the first run
func (t innertubeText) BrowseID() string {
	if len(t.Runs) == 0 {
		return ""
	}
	return t.Runs[0].NavigationEndpoint.BrowseEndpoint.BrowseID
}

func (vr *videoRenderer) isLive() bool {
	for _, badge := range vr.Badges {
		if strings.Contains(strings.ToUpper(badge.MetadataBadgeRenderer.Label), "LIVE") {
			return true
		}
	}
	return false
}

func (vr *videoRenderer) searchResult() SearchResult {
	author := vr.OwnerText.String()
	if author == "" {
		author = vr.LongBylineText.String()
	}

	return SearchResult{
		VideoID:    vr.VideoID,
		Title:      vr.Title.String(),
		Author:     author,
		AuthorID:   vr.OwnerText.BrowseID(),
		LengthText: vr.LengthText.SimpleText,
		IsLive:     vr.isLive(),
		Thumbnails: vr.Thumbnail.Thumbnails,
	}
}
