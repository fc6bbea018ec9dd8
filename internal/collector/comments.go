package collector

import (
	"context"

	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
)

// collectComments pages through a video's comment threads, replies
// inlined, persisting every page as it arrives.
func (c *Collector) collectComments(ctx context.Context, videoId string) PageOutcome {
	pageSize := c.Config.Collector.CommentPageSize
	order := c.Config.Collector.CommentOrder

	outcome, total := c.runPages(ctx, c.Config.Collector.MaxCommentsPerVideo, func(ctx context.Context, pageToken string) (int, string, error) {
		comments, nextToken, err := c.Api.CommentThreadsPage(ctx, videoId, pageToken, pageSize, order)
		if err != nil {
			return 0, "", err
		}
		if len(comments) == 0 {
			return 0, nextToken, nil
		}

		records := make([]model.Comment, 0, len(comments))
		for _, comment := range comments {
			records = append(records, *model.CommentFromAPI(comment))
		}
		if err := c.Sink.SaveComments(ctx, records); err != nil {
			return 0, "", err
		}

		c.stats.CommentsCollected += len(records)
		return len(records), nextToken, nil
	})

	if total > 0 {
		c.Logger.Debug(ctx, "Video %s: %d comments collected (%s)", videoId, total, outcome)
	}
	return outcome
}
