// Package checkpoint persists collection progress so an interrupted harvest
// can resume at the exact source it stopped at, with its statistics intact.
package checkpoint

import (
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
)

// Stats is the running tally the collector maintains and the checkpoint
// snapshots. It is a fixed schema on purpose: restoring it is exhaustive,
// and a renamed counter fails loudly at compile time instead of silently
// dropping out of an open-ended map.
type Stats struct {
	ChannelsProcessed   int       `json:"channels_processed"`
	ChannelsSucceeded   int       `json:"channels_succeeded"`
	ChannelsFailed      int       `json:"channels_failed"`
	VideosCollected     int       `json:"videos_collected"`
	CommentsCollected   int       `json:"comments_collected"`
	QuotaSession        int       `json:"quota_session"`
	QuotaCumulative     int       `json:"quota_cumulative"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	StartTime           time.Time `json:"start_time"`
}

// Checkpoint is one durable snapshot of collection progress.
type Checkpoint struct {
	// NextIndex is the position of the first unprocessed source.
	NextIndex int `json:"next_index"`
	// LastSource is kept for diagnostics only; resume keys off NextIndex.
	LastSource source.Source `json:"last_source"`
	Stats      Stats         `json:"stats"`
	SavedAt    time.Time     `json:"saved_at"`
}
