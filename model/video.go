package model

type YoutubeVideoID string

// SearchResult is one item of a search page. YoutubeID is empty when the
// upstream item did not resolve to a video.
type SearchResult struct {
	YoutubeID YoutubeVideoID
	Title     string
	Channel   string
	Thumbnail string
}

type SearchPage struct {
	Items         []SearchResult
	NextPageToken string
}

// VideoStats holds the enrichment data for a single video. ViewCount is nil
// when the upstream did not report statistics.
type VideoStats struct {
	ViewCount *uint64
	Duration  string
}

type VideoSummary struct {
	ID        YoutubeVideoID `json:"id"`
	Title     string         `json:"title"`
	Channel   string         `json:"channel"`
	Thumbnail string         `json:"thumbnail"`
	URL       string         `json:"url"`
	ViewCount *uint64        `json:"view_count"`
	Duration  *string        `json:"duration"`
}

type Digest struct {
	Requested int            `json:"requested"`
	Returned  int            `json:"returned"`
	Videos    []VideoSummary `json:"videos"`
}

func WatchURL(id YoutubeVideoID) string {
	return "https://youtu.be/" + string(id)
}
