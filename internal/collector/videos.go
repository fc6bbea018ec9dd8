package collector

import (
	"context"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
)

// collectVideos walks a channel's uploads playlist page by page. Each
// page is enriched through videos.list and persisted before the next
// page is fetched, so an interruption loses at most one page.
func (c *Collector) collectVideos(ctx context.Context, ch *model.Channel) PageOutcome {
	if ch.UploadsPlaylistId == "" {
		c.Logger.Warn(ctx, "Channel %s has no uploads playlist", ch.ChannelId)
		return PageComplete
	}

	var collected []model.Video
	pageSize := c.Config.Collector.VideoPageSize

	outcome, total := c.runPages(ctx, c.Config.Collector.MaxVideosPerChannel, func(ctx context.Context, pageToken string) (int, string, error) {
		items, nextToken, err := c.Api.PlaylistItemsPage(ctx, ch.UploadsPlaylistId, pageToken, pageSize)
		if err != nil {
			return 0, "", err
		}

		videoIds := make([]string, 0, len(items))
		for _, item := range items {
			if item.ContentDetails.VideoId != "" {
				videoIds = append(videoIds, item.ContentDetails.VideoId)
			}
		}
		if len(videoIds) == 0 {
			return 0, nextToken, nil
		}

		c.throttle(ctx)
		details, err := c.Api.VideoDetails(ctx, videoIds)
		if err != nil {
			return 0, "", err
		}

		records := make([]model.Video, 0, len(details))
		for _, d := range details {
			records = append(records, *model.VideoFromAPI(d))
		}
		if err := c.Sink.SaveVideos(ctx, records); err != nil {
			return 0, "", err
		}

		c.stats.VideosCollected += len(records)
		collected = append(collected, records...)
		return len(records), nextToken, nil
	})

	c.Logger.Info(ctx, "Channel %s: %d videos collected (%s)", ch.ChannelId, total, outcome)
	if outcome != PageComplete {
		return outcome
	}

	return c.collectPerVideo(ctx, collected)
}

// collectPerVideo fetches comments (and optionally caption listings) for
// each collected video. The budget gate runs per video: a channel with
// thousands of commented videos must not drain the buffer unchecked.
func (c *Collector) collectPerVideo(ctx context.Context, videos []model.Video) PageOutcome {
	for i := range videos {
		if ctx.Err() != nil {
			return PageInterrupted
		}
		if !c.Ledger.HasBudget() {
			return PageBudgetExhausted
		}

		video := &videos[i]
		if c.Config.Collector.IncludeCaptions {
			c.collectCaptions(ctx, video.VideoId)
		}

		if video.CommentCount > 0 {
			outcome := c.collectComments(ctx, video.VideoId)
			switch outcome {
			case PageBudgetExhausted, PageInterrupted:
				return outcome
			case PageResourceError:
				// Comments disabled after the count was taken; move on.
				c.Logger.Warn(ctx, "Comments unavailable for video %s", video.VideoId)
			}
		}

		c.sleep(ctx, time.Duration(c.Config.Collector.DelayBetweenVideosMs)*time.Millisecond)
	}
	return PageComplete
}

// collectCaptions stores the caption track listing. Most videos answer
// 403 without OAuth; that is absence of data, not a failure.
func (c *Collector) collectCaptions(ctx context.Context, videoId string) {
	var tracks []youtubeapi.CaptionTrack
	err := c.fetchWithRetry(ctx, func() error {
		var fetchErr error
		tracks, fetchErr = c.Api.CaptionTracks(ctx, videoId)
		return fetchErr
	})
	if err != nil {
		if !youtubeapi.IsPermanent(err) {
			c.Logger.Warn(ctx, "Caption listing failed for video %s: %v", videoId, err)
		}
		return
	}

	if err := c.Sink.SaveCaptionTracks(ctx, videoId, tracks); err != nil {
		c.Logger.Error(ctx, "Failed to save caption tracks for video %s: %v", videoId, err)
	}
}
