// Package collector walks a list of channel sources through the
// channel -> videos -> comments hierarchy, spending quota through a
// ledger, persisting page by page, and checkpointing so an interrupted
// run resumes where it stopped.

package collector

import (
	"context"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/checkpoint"
	"github.com/losardor/youtube-monitorin-pipeline/internal/limiter"
	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/internal/quota"
	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

// API is the slice of the YouTube caller the collector uses. Tests swap
// in a fake; production wires *youtubeapi.Caller.
type API interface {
	ChannelById(ctx context.Context, channelId string) (*youtubeapi.Channel, error)
	ChannelByHandle(ctx context.Context, handle string) (*youtubeapi.Channel, error)
	ChannelByUsername(ctx context.Context, username string) (*youtubeapi.Channel, error)
	SearchChannelId(ctx context.Context, query string) (string, error)
	PlaylistItemsPage(ctx context.Context, playlistId, pageToken string, maxResults int) ([]youtubeapi.PlaylistItem, string, error)
	VideoDetails(ctx context.Context, videoIds []string) ([]youtubeapi.Video, error)
	CommentThreadsPage(ctx context.Context, videoId, pageToken string, maxResults int, order string) ([]youtubeapi.Comment, string, error)
	CaptionTracks(ctx context.Context, videoId string) ([]youtubeapi.CaptionTrack, error)
}

type Collector struct {
	Config      *cfg.Config
	Logger      log.Logger
	Api         API
	Sink        Sink
	Ledger      *quota.Ledger
	Limiter     *limiter.RateLimiter
	Checkpoints *checkpoint.Store
	Runs        RunRecorder

	// OnRunStart is called with the run id right after the run row is
	// inserted, before any API call. The quota audit recorder hooks in
	// here to tag its rows.
	OnRunStart func(runId uint)

	stats checkpoint.Stats
	// sessionBase carries the session spend restored from a checkpoint,
	// so a resumed run keeps counting where the interrupted one stopped.
	sessionBase int
}

func NewCollector(config *cfg.Config, logger log.Logger, api API, sink Sink, ledger *quota.Ledger, rateLimiter *limiter.RateLimiter, checkpoints *checkpoint.Store, runs RunRecorder) (*Collector, error) {
	return &Collector{
		Config:      config,
		Logger:      logger,
		Api:         api,
		Sink:        sink,
		Ledger:      ledger,
		Limiter:     rateLimiter,
		Checkpoints: checkpoints,
		Runs:        runs,
	}, nil
}

type Options struct {
	// StartFrom is the index of the first source to process. A loaded
	// checkpoint overrides it.
	StartFrom int
	// MaxChannels caps how many sources this run processes; 0 = no cap.
	MaxChannels int
	// Resume restores progress from the checkpoint store if one exists.
	Resume bool
}

// Run processes sources in order and returns the final statistics. The
// run row is closed exactly once, whatever path ends the loop; only a
// failure to open it is returned as an error.
func (c *Collector) Run(ctx context.Context, sources []source.Source, opts Options) (checkpoint.Stats, error) {
	startIndex := opts.StartFrom
	c.stats = checkpoint.Stats{StartTime: time.Now().UTC()}
	c.sessionBase = 0

	if opts.Resume {
		cp, ok, err := c.Checkpoints.Load()
		switch {
		case err != nil:
			c.Logger.Warn(ctx, "Cannot load checkpoint, starting fresh: %v", err)
		case ok:
			c.stats = cp.Stats
			// A fresh process gets a fresh failure streak; the old one
			// reflects conditions that may have passed.
			c.stats.ConsecutiveFailures = 0
			c.sessionBase = cp.Stats.QuotaSession
			if cp.Stats.QuotaCumulative > c.Ledger.CumulativeUsed() {
				c.Ledger.Seed(cp.Stats.QuotaCumulative)
			}
			startIndex = cp.NextIndex
			c.Logger.Info(ctx, "Resuming from source %d (checkpoint saved %s)", startIndex, cp.SavedAt.Format(time.RFC3339))
		default:
			c.Logger.Info(ctx, "No checkpoint found, starting fresh")
		}
	}
	if startIndex < 0 {
		startIndex = 0
	}

	runId, err := c.Runs.Begin()
	if err != nil {
		return c.stats, err
	}
	if c.OnRunStart != nil {
		c.OnRunStart(runId)
	}

	status := model.RunStatusCompleted
	stopReason := "all sources processed"
	processedThisRun := 0
	stoppedAt := -1 // index of the first unprocessed source; -1 = none left
	lastSource := source.Source{}

	// The run row must reach a terminal status on every exit path. A
	// panic below (a sink, the API fake, anywhere) would otherwise leave
	// it stuck at running forever.
	defer func() {
		r := recover()
		if r != nil {
			status = model.RunStatusFailed
			stopReason = "unhandled panic"
		}
		c.syncStats()
		if err := c.Runs.End(runId, status, stopReason, c.stats); err != nil {
			c.Logger.Error(ctx, "Failed to close run %d: %v", runId, err)
		}
		if r != nil {
			panic(r)
		}
	}()

loop:
	for idx := startIndex; idx < len(sources); idx++ {
		if ctx.Err() != nil {
			status = model.RunStatusInterrupted
			stopReason = "interrupt signal"
			stoppedAt = idx
			break
		}
		if opts.MaxChannels > 0 && processedThisRun >= opts.MaxChannels {
			stopReason = "channel cap reached"
			stoppedAt = idx
			break
		}
		if !c.Ledger.HasBudget() {
			stopReason = "quota budget exhausted"
			stoppedAt = idx
			break
		}

		src := sources[idx]
		lastSource = src
		c.Logger.Info(ctx, "Source %d/%d: %s", idx+1, len(sources), src.YoutubeURL)

		outcome := c.collectSource(ctx, src)
		c.syncStats()

		switch outcome {
		case channelCollected:
			processedThisRun++
			c.stats.ChannelsProcessed++
			c.stats.ChannelsSucceeded++
			c.stats.ConsecutiveFailures = 0
		case channelFailed:
			processedThisRun++
			c.stats.ChannelsProcessed++
			c.stats.ChannelsFailed++
			c.stats.ConsecutiveFailures++
		case channelBudgetExhausted:
			// The source is partially collected; pages already persisted
			// are durable and the upserts make redoing it next run safe.
			stopReason = "quota budget exhausted"
			stoppedAt = idx
			break loop
		case channelInterrupted:
			status = model.RunStatusInterrupted
			stopReason = "interrupt signal"
			stoppedAt = idx
			break loop
		}

		if ceiling := c.Config.Collector.MaxConsecutiveFailures; ceiling > 0 && c.stats.ConsecutiveFailures >= ceiling {
			c.Logger.Error(ctx, "Stopping after %d consecutive source failures", c.stats.ConsecutiveFailures)
			stopReason = "consecutive failure ceiling"
			stoppedAt = idx + 1
			break
		}

		if every := c.Config.Collector.CheckpointEvery; every > 0 && processedThisRun%every == 0 {
			c.saveCheckpoint(ctx, idx+1, src)
		}

		c.sleep(ctx, time.Duration(c.Config.Collector.DelayBetweenChannelsMs)*time.Millisecond)
	}

	c.syncStats()
	if stoppedAt >= 0 && stoppedAt < len(sources) {
		c.saveCheckpoint(ctx, stoppedAt, lastSource)
	} else {
		if err := c.Checkpoints.Clear(); err != nil {
			c.Logger.Warn(ctx, "Cannot clear checkpoint: %v", err)
		}
	}

	c.Logger.Info(ctx, "Run %d %s (%s): %d channels (%d ok, %d failed), %d videos, %d comments, quota %d session / %d cumulative",
		runId, status, stopReason,
		c.stats.ChannelsProcessed, c.stats.ChannelsSucceeded, c.stats.ChannelsFailed,
		c.stats.VideosCollected, c.stats.CommentsCollected,
		c.stats.QuotaSession, c.stats.QuotaCumulative)

	return c.stats, nil
}

// collectSource harvests one source end to end: resolve, persist the
// channel, then videos and their comments.
func (c *Collector) collectSource(ctx context.Context, src source.Source) channelOutcome {
	ch, err := c.resolveChannel(ctx, src)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return channelInterrupted
		case youtubeapi.IsQuotaExceeded(err):
			return channelBudgetExhausted
		}
		c.Logger.Error(ctx, "Cannot resolve %s: %v", src.YoutubeURL, err)
		return channelFailed
	}

	record := model.ChannelFromAPI(ch, src)
	if err := c.Sink.SaveChannel(ctx, record); err != nil {
		c.Logger.Error(ctx, "Cannot save channel %s: %v", record.ChannelId, err)
		return channelFailed
	}

	switch c.collectVideos(ctx, record) {
	case PageBudgetExhausted:
		return channelBudgetExhausted
	case PageInterrupted:
		return channelInterrupted
	case PageResourceError, PageRetryExhausted:
		return channelFailed
	}
	return channelCollected
}

func (c *Collector) syncStats() {
	c.stats.QuotaSession = c.sessionBase + c.Ledger.SessionUsed()
	c.stats.QuotaCumulative = c.Ledger.CumulativeUsed()
}

func (c *Collector) saveCheckpoint(ctx context.Context, nextIndex int, last source.Source) {
	c.syncStats()
	err := c.Checkpoints.Save(checkpoint.Checkpoint{
		NextIndex:  nextIndex,
		LastSource: last,
		Stats:      c.stats,
	})
	if err != nil {
		c.Logger.Error(ctx, "Cannot save checkpoint at source %d: %v", nextIndex, err)
		return
	}
	c.Logger.Info(ctx, "Checkpoint saved, next source index %d", nextIndex)
}
