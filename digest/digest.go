// Package digest turns a list of interests into a view-count ordered list of
// enriched video summaries. All state is scoped to a single Run.
package digest

import (
	"context"
	"fmt"
	"time"

	"ewintr.nl/ytdigest/model"
	"golang.org/x/exp/slog"
)

const (
	DefaultMaxResults = 50
	MaxAllowedResults = 1000
	SearchPageSize    = 50
	StatsBatchSize    = 50
	DefaultPageDelay  = 150 * time.Millisecond
)

type Searcher interface {
	Search(ctx context.Context, query string, pageSize int64, pageToken string) (model.SearchPage, error)
}

type StatsFetcher interface {
	FetchStats(ctx context.Context, ids []model.YoutubeVideoID) (map[model.YoutubeVideoID]model.VideoStats, error)
}

type Pipeline struct {
	searcher  Searcher
	stats     StatsFetcher
	niches    Niches
	pageDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *slog.Logger
}

func NewPipeline(searcher Searcher, stats StatsFetcher, niches Niches, pageDelay time.Duration, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		searcher:  searcher,
		stats:     stats,
		niches:    niches,
		pageDelay: pageDelay,
		sleep:     sleepCtx,
		logger:    logger,
	}
}

// ClampMaxResults bounds a requested count to [1, MaxAllowedResults].
func ClampMaxResults(n int) int {
	return min(max(n, 1), MaxAllowedResults)
}

// Run executes the whole pipeline. Either every step succeeds or a *Error
// is returned, there are no partial digests.
func (p *Pipeline) Run(ctx context.Context, interests []string, maxResults int) (model.Digest, error) {
	if len(interests) == 0 {
		return model.Digest{}, inputErr(ErrNoInterests)
	}

	query := p.niches.BuildQuery(interests)
	p.logger.Info("running digest", slog.String("query", query), slog.Int("requested", maxResults))

	results, err := p.Search(ctx, query, maxResults)
	if err != nil {
		return model.Digest{}, err
	}

	ids := make([]model.YoutubeVideoID, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.YoutubeID)
	}
	stats, err := p.Enrich(ctx, ids)
	if err != nil {
		return model.Digest{}, err
	}

	videos := Assemble(results, stats)
	p.logger.Info("digest ready", slog.Int("requested", maxResults), slog.Int("returned", len(videos)))

	return model.Digest{
		Requested: maxResults,
		Returned:  len(videos),
		Videos:    videos,
	}, nil
}

// Search pages through the results for query until want items with a video
// id are collected or the upstream has no next page.
func (p *Pipeline) Search(ctx context.Context, query string, want int) ([]model.SearchResult, error) {
	results := make([]model.SearchResult, 0, max(want, 0))
	remaining := want
	token := ""
	for remaining > 0 {
		pageSize := min(SearchPageSize, remaining)
		page, err := p.searcher.Search(ctx, query, int64(pageSize), token)
		if err != nil {
			return nil, upstreamErr(fmt.Errorf("search failed: %w", err))
		}

		count := 0
		for _, item := range page.Items {
			if remaining == 0 {
				break
			}
			if item.YoutubeID == "" {
				continue
			}
			results = append(results, item)
			remaining--
			count++
		}
		p.logger.Info("fetched search page", slog.String("pagetoken", token), slog.Int("size", pageSize), slog.Int("count", count))

		token = page.NextPageToken
		if token == "" || remaining == 0 {
			break
		}
		if err := p.sleep(ctx, p.pageDelay); err != nil {
			return nil, internalErr(fmt.Errorf("interrupted between search pages: %w", err))
		}
	}

	return results, nil
}

// Enrich looks up statistics in consecutive batches of StatsBatchSize ids.
// Ids the upstream does not know about are absent from the returned map.
func (p *Pipeline) Enrich(ctx context.Context, ids []model.YoutubeVideoID) (map[model.YoutubeVideoID]model.VideoStats, error) {
	table := make(map[model.YoutubeVideoID]model.VideoStats, len(ids))
	for start := 0; start < len(ids); start += StatsBatchSize {
		end := min(start+StatsBatchSize, len(ids))
		batch, err := p.stats.FetchStats(ctx, ids[start:end])
		if err != nil {
			return nil, upstreamErr(fmt.Errorf("stats lookup failed: %w", err))
		}
		for id, s := range batch {
			table[id] = s
		}
		p.logger.Info("fetched stats batch", slog.Int("size", end-start), slog.Int("found", len(batch)))
	}

	return table, nil
}

// Assemble keeps the order of results. Videos without stats get a nil view
// count and duration.
func Assemble(results []model.SearchResult, stats map[model.YoutubeVideoID]model.VideoStats) []model.VideoSummary {
	videos := make([]model.VideoSummary, 0, len(results))
	for _, r := range results {
		summary := model.VideoSummary{
			ID:        r.YoutubeID,
			Title:     r.Title,
			Channel:   r.Channel,
			Thumbnail: r.Thumbnail,
			URL:       model.WatchURL(r.YoutubeID),
		}
		if s, ok := stats[r.YoutubeID]; ok {
			summary.ViewCount = s.ViewCount
			if s.Duration != "" {
				d := ReadableDuration(s.Duration)
				summary.Duration = &d
			}
		}
		videos = append(videos, summary)
	}

	return videos
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
