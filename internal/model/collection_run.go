package model

import (
	"context"
	"errors"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/checkpoint"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"gorm.io/gorm"
)

const (
	RunStatusRunning     = "running"
	RunStatusCompleted   = "completed"
	RunStatusInterrupted = "interrupted"
	RunStatusFailed      = "failed"
)

// CollectionRun is the audit row for one invocation of the pipeline.
// Begin inserts it as running; exactly one End call closes it.
type CollectionRun struct {
	Model
	ID                uint       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	StartedAt         time.Time  `json:"started_at" gorm:"column:started_at;not null"`
	EndedAt           *time.Time `json:"ended_at" gorm:"column:ended_at"`
	Status            string     `json:"status" gorm:"column:status;type:varchar(16);not null;index"`
	StopReason        string     `json:"stop_reason" gorm:"column:stop_reason;type:varchar(64)"`
	ChannelsProcessed int        `json:"channels_processed" gorm:"column:channels_processed;default:0"`
	ChannelsSucceeded int        `json:"channels_succeeded" gorm:"column:channels_succeeded;default:0"`
	ChannelsFailed    int        `json:"channels_failed" gorm:"column:channels_failed;default:0"`
	VideosCollected   int        `json:"videos_collected" gorm:"column:videos_collected;default:0"`
	CommentsCollected int        `json:"comments_collected" gorm:"column:comments_collected;default:0"`
	QuotaSession      int        `json:"quota_session" gorm:"column:quota_session;default:0"`
	QuotaCumulative   int        `json:"quota_cumulative" gorm:"column:quota_cumulative;default:0"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewCollectionRun(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*CollectionRun, error) {
	return &CollectionRun{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (r *CollectionRun) TableName() string {
	return "collection_runs"
}

// Begin inserts a new running row and returns its id.
func (r *CollectionRun) Begin() (uint, error) {
	ctx := context.Background()

	db, err := r.Mysql.Db()
	if err != nil {
		r.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return 0, err
	}

	run := &CollectionRun{
		StartedAt: time.Now(),
		Status:    RunStatusRunning,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(run).Error; err != nil {
		r.Logger.Error(ctx, "Failed to begin collection run: %v", err)
		return 0, err
	}

	r.Logger.Info(ctx, "Started collection run %d", run.ID)
	return run.ID, nil
}

// End closes the run with its final status, stop reason and statistics.
func (r *CollectionRun) End(runId uint, status, stopReason string, stats checkpoint.Stats) error {
	ctx := context.Background()

	db, err := r.Mysql.Db()
	if err != nil {
		r.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"ended_at":           &now,
		"status":             status,
		"stop_reason":        TruncateString(stopReason, 64),
		"channels_processed": stats.ChannelsProcessed,
		"channels_succeeded": stats.ChannelsSucceeded,
		"channels_failed":    stats.ChannelsFailed,
		"videos_collected":   stats.VideosCollected,
		"comments_collected": stats.CommentsCollected,
		"quota_session":      stats.QuotaSession,
		"quota_cumulative":   stats.QuotaCumulative,
		"updated_at":         now,
	}

	if err := db.Model(&CollectionRun{}).Where("id = ?", runId).Updates(updates).Error; err != nil {
		r.Logger.Error(ctx, "Failed to end collection run %d: %v", runId, err)
		return err
	}

	r.Logger.Info(ctx, "Ended collection run %d with status %s", runId, status)
	return nil
}

// LastCumulativeQuota returns the cumulative quota recorded by the most
// recent run started after the given cutoff (normally today's midnight
// Pacific, the API's quota reset). Abandoned runs count too: a run still
// marked running spent quota even if it never closed cleanly.
func (r *CollectionRun) LastCumulativeQuota(since time.Time) (int, error) {
	db, err := r.Mysql.Db()
	if err != nil {
		return 0, err
	}

	var run CollectionRun
	err = db.Where("started_at >= ? AND status IN ?", since, []string{RunStatusCompleted, RunStatusRunning}).
		Order("id DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return run.QuotaCumulative, nil
}
