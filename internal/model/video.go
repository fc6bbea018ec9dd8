package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Video struct {
	Model
	VideoId              string    `json:"video_id" gorm:"column:video_id;type:varchar(16);primaryKey"`
	ChannelId            string    `json:"channel_id" gorm:"column:channel_id;type:varchar(32);index;not null"`
	Title                string    `json:"title" gorm:"column:title;type:varchar(255)"`
	Description          string    `json:"description" gorm:"column:description;type:text"`
	PublishedAt          string    `json:"published_at" gorm:"column:published_at;type:varchar(32)"`
	CategoryId           string    `json:"category_id" gorm:"column:category_id;type:varchar(8)"`
	Duration             string    `json:"duration" gorm:"column:duration;type:varchar(32)"`
	DefaultLanguage      string    `json:"default_language" gorm:"column:default_language;type:varchar(16)"`
	DefaultAudioLanguage string    `json:"default_audio_language" gorm:"column:default_audio_language;type:varchar(16)"`
	Tags                 string    `json:"tags" gorm:"column:tags;type:text"`
	ThumbnailUrl         string    `json:"thumbnail_url" gorm:"column:thumbnail_url;type:varchar(255)"`
	ViewCount            int64     `json:"view_count" gorm:"column:view_count;default:0"`
	LikeCount            int64     `json:"like_count" gorm:"column:like_count;default:0"`
	CommentCount         int64     `json:"comment_count" gorm:"column:comment_count;default:0"`
	MadeForKids          bool      `json:"made_for_kids" gorm:"column:made_for_kids;default:false"`
	HasCaptions          bool      `json:"has_captions" gorm:"column:has_captions;default:false"`
	TopicCategories      string    `json:"topic_categories" gorm:"column:topic_categories;type:text"`
	CreatedAt            time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewVideo(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*Video, error) {
	return &Video{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (v *Video) TableName() string {
	return "videos"
}

var videoUpdateColumns = []string{
	"title", "description", "category_id", "duration",
	"default_language", "default_audio_language", "tags", "thumbnail_url",
	"view_count", "like_count", "comment_count", "made_for_kids",
	"has_captions", "topic_categories", "updated_at",
}

// UpsertBatch persists one page of videos in a single transaction so a
// page is either fully stored or not stored at all.
func (v *Video) UpsertBatch(records []Video) error {
	if len(records) == 0 {
		return nil
	}

	ctx := context.Background()
	db, err := v.Mysql.Db()
	if err != nil {
		v.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns(videoUpdateColumns),
		}).CreateInBatches(records, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert videos: %w", result.Error)
		}
		return nil
	})
}

func (v *Video) CreateBatch(messages []VideoMessage) error {
	records := make([]Video, 0, len(messages))
	for _, msg := range messages {
		records = append(records, *VideoFromMessage(msg))
	}
	return v.UpsertBatch(records)
}

func VideoFromAPI(api youtubeapi.Video) *Video {
	return &Video{
		VideoId:              api.Id,
		ChannelId:            api.Snippet.ChannelId,
		Title:                TruncateString(api.Snippet.Title, 250),
		Description:          api.Snippet.Description,
		PublishedAt:          api.Snippet.PublishedAt,
		CategoryId:           api.Snippet.CategoryId,
		Duration:             TruncateString(api.ContentDetails.Duration, 32),
		DefaultLanguage:      TruncateString(api.Snippet.DefaultLanguage, 16),
		DefaultAudioLanguage: TruncateString(api.Snippet.DefaultAudioLanguage, 16),
		Tags:                 strings.Join(api.Snippet.Tags, ","),
		ThumbnailUrl:         TruncateString(api.Snippet.Thumbnails.High.Url, 250),
		ViewCount:            ParseCount(api.Statistics.ViewCount),
		LikeCount:            ParseCount(api.Statistics.LikeCount),
		CommentCount:         ParseCount(api.Statistics.CommentCount),
		MadeForKids:          api.Status.MadeForKids,
		HasCaptions:          api.ContentDetails.Caption == "true",
		TopicCategories:      strings.Join(api.TopicDetails.TopicCategories, ","),
	}
}
