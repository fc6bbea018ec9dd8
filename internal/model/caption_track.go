package model

import (
	"context"
	"fmt"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaptionTrack records which caption tracks exist for a video. Track
// contents need OAuth to download, so only the listing is stored.
type CaptionTrack struct {
	Model
	CaptionId      string    `json:"caption_id" gorm:"column:caption_id;type:varchar(64);primaryKey"`
	VideoId        string    `json:"video_id" gorm:"column:video_id;type:varchar(16);index;not null"`
	Language       string    `json:"language" gorm:"column:language;type:varchar(16)"`
	Name           string    `json:"name" gorm:"column:name;type:varchar(255)"`
	TrackKind      string    `json:"track_kind" gorm:"column:track_kind;type:varchar(16)"`
	AudioTrackType string    `json:"audio_track_type" gorm:"column:audio_track_type;type:varchar(16)"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewCaptionTrack(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*CaptionTrack, error) {
	return &CaptionTrack{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (c *CaptionTrack) TableName() string {
	return "caption_tracks"
}

func (c *CaptionTrack) UpsertBatch(videoId string, tracks []youtubeapi.CaptionTrack) error {
	if len(tracks) == 0 {
		return nil
	}

	ctx := context.Background()
	db, err := c.Mysql.Db()
	if err != nil {
		c.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	records := make([]CaptionTrack, 0, len(tracks))
	for _, track := range tracks {
		records = append(records, CaptionTrack{
			CaptionId:      track.Id,
			VideoId:        videoId,
			Language:       TruncateString(track.Snippet.Language, 16),
			Name:           TruncateString(track.Snippet.Name, 250),
			TrackKind:      TruncateString(track.Snippet.TrackKind, 16),
			AudioTrackType: TruncateString(track.Snippet.AudioTrackType, 16),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "caption_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"language", "name", "track_kind", "audio_track_type", "updated_at"}),
		}).CreateInBatches(records, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert caption tracks: %w", result.Error)
		}
		return nil
	})
}
