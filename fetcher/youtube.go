package fetcher

import (
	"context"
	"strings"

	"ewintr.nl/ytdigest/metrics"
	"ewintr.nl/ytdigest/model"
	"google.golang.org/api/youtube/v3"
)

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

// Search fetches one page of videos matching query, most viewed first.
func (y *Youtube) Search(ctx context.Context, query string, pageSize int64, pageToken string) (model.SearchPage, error) {
	call := y.Client.Search.
		List([]string{"id,snippet"}).
		Q(query).
		Type("video").
		Order("viewCount").
		MaxResults(pageSize)

	if pageToken != "" {
		call.PageToken(pageToken)
	}

	response, err := call.Context(ctx).Do()
	metrics.RecordUpstream(metrics.OperationSearch, err)
	if err != nil {
		return model.SearchPage{}, err
	}

	page := model.SearchPage{
		Items:         make([]model.SearchResult, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		var result model.SearchResult
		if item.Id != nil {
			result.YoutubeID = model.YoutubeVideoID(item.Id.VideoId)
		}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.Channel = item.Snippet.ChannelTitle
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
				result.Thumbnail = item.Snippet.Thumbnails.Default.Url
			}
		}
		page.Items = append(page.Items, result)
	}

	return page, nil
}

// statsFields limits the response to the values the digest uses. With the
// mask, a video whose view count is hidden comes back without a statistics
// object instead of with a zero count.
const statsFields = "items(id,statistics(viewCount),contentDetails(duration))"

// FetchStats looks up view counts and durations. The upstream accepts at most
// 50 ids per call.
func (y *Youtube) FetchStats(ctx context.Context, ytIDs []model.YoutubeVideoID) (map[model.YoutubeVideoID]model.VideoStats, error) {
	strIDs := make([]string, len(ytIDs))
	for i, id := range ytIDs {
		strIDs[i] = string(id)
	}
	call := y.Client.Videos.
		List([]string{"statistics,contentDetails"}).
		Id(strings.Join(strIDs, ",")).
		Fields(statsFields)

	response, err := call.Context(ctx).Do()
	metrics.RecordUpstream(metrics.OperationStats, err)
	if err != nil {
		return map[model.YoutubeVideoID]model.VideoStats{}, err
	}

	stats := make(map[model.YoutubeVideoID]model.VideoStats, len(response.Items))
	for _, item := range response.Items {
		var s model.VideoStats
		if item.Statistics != nil {
			views := item.Statistics.ViewCount
			s.ViewCount = &views
		}
		if item.ContentDetails != nil {
			s.Duration = item.ContentDetails.Duration
		}
		stats[model.YoutubeVideoID(item.Id)] = s
	}

	return stats, nil
}
