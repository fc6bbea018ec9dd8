package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Channel is one YouTube channel enriched with the metadata of the media
// source it was resolved from.
type Channel struct {
	Model
	ChannelId         string    `json:"channel_id" gorm:"column:channel_id;type:varchar(32);primaryKey"`
	Title             string    `json:"title" gorm:"column:title;type:varchar(255);not null"`
	Description       string    `json:"description" gorm:"column:description;type:text"`
	CustomUrl         string    `json:"custom_url" gorm:"column:custom_url;type:varchar(255)"`
	PublishedAt       string    `json:"published_at" gorm:"column:published_at;type:varchar(32)"`
	Country           string    `json:"country" gorm:"column:country;type:varchar(8)"`
	SubscriberCount   int64     `json:"subscriber_count" gorm:"column:subscriber_count;default:0"`
	VideoCount        int64     `json:"video_count" gorm:"column:video_count;default:0"`
	ViewCount         int64     `json:"view_count" gorm:"column:view_count;default:0"`
	UploadsPlaylistId string    `json:"uploads_playlist_id" gorm:"column:uploads_playlist_id;type:varchar(40)"`
	Keywords          string    `json:"keywords" gorm:"column:keywords;type:text"`
	TopicCategories   string    `json:"topic_categories" gorm:"column:topic_categories;type:text"`
	Domain            string    `json:"domain" gorm:"column:domain;type:varchar(255)"`
	BrandName         string    `json:"brand_name" gorm:"column:brand_name;type:varchar(255)"`
	SourceCountry     string    `json:"source_country" gorm:"column:source_country;type:varchar(64)"`
	Language          string    `json:"language" gorm:"column:language;type:varchar(64)"`
	Rating            string    `json:"rating" gorm:"column:rating;type:varchar(64)"`
	Score             string    `json:"score" gorm:"column:score;type:varchar(32)"`
	Orientation       string    `json:"orientation" gorm:"column:orientation;type:varchar(64)"`
	TypeOfContent     string    `json:"type_of_content" gorm:"column:type_of_content;type:varchar(128)"`
	Topics            string    `json:"topics" gorm:"column:topics;type:text"`
	Owner             string    `json:"owner" gorm:"column:owner;type:varchar(255)"`
	TypeOfOwner       string    `json:"type_of_owner" gorm:"column:type_of_owner;type:varchar(128)"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewChannel(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*Channel, error) {
	return &Channel{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (c *Channel) TableName() string {
	return "channels"
}

// Channel statistics move between runs, so conflicts on channel_id update
// the mutable columns in place.
var channelUpdateColumns = []string{
	"title", "description", "custom_url", "country",
	"subscriber_count", "video_count", "view_count",
	"uploads_playlist_id", "keywords", "topic_categories",
	"domain", "brand_name", "source_country", "language", "rating",
	"score", "orientation", "type_of_content", "topics", "owner",
	"type_of_owner", "updated_at",
}

func (c *Channel) Upsert(record *Channel) error {
	ctx := context.Background()

	db, err := c.Mysql.Db()
	if err != nil {
		c.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns(channelUpdateColumns),
	}).Create(record).Error; err != nil {
		c.Logger.Error(ctx, "Failed to upsert channel %s: %v", record.ChannelId, err)
		return err
	}
	return nil
}

func (c *Channel) CreateBatch(messages []ChannelMessage) error {
	db, err := c.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	records := make([]Channel, 0, len(messages))
	now := time.Now()
	for _, msg := range messages {
		record := ChannelFromMessage(msg)
		record.CreatedAt = now
		record.UpdatedAt = now
		records = append(records, *record)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns(channelUpdateColumns),
		}).CreateInBatches(records, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create channels: %w", result.Error)
		}
		return nil
	})
}

// ChannelFromAPI folds an API channel and its originating source row into
// one persistable record.
func ChannelFromAPI(api *youtubeapi.Channel, src source.Source) *Channel {
	return &Channel{
		ChannelId:         api.Id,
		Title:             TruncateString(api.Snippet.Title, 250),
		Description:       api.Snippet.Description,
		CustomUrl:         TruncateString(api.Snippet.CustomUrl, 250),
		PublishedAt:       api.Snippet.PublishedAt,
		Country:           TruncateString(api.Snippet.Country, 8),
		SubscriberCount:   ParseCount(api.Statistics.SubscriberCount),
		VideoCount:        ParseCount(api.Statistics.VideoCount),
		ViewCount:         ParseCount(api.Statistics.ViewCount),
		UploadsPlaylistId: api.ContentDetails.RelatedPlaylists.Uploads,
		Keywords:          api.BrandingSettings.Channel.Keywords,
		TopicCategories:   strings.Join(api.TopicDetails.TopicCategories, ","),
		Domain:            TruncateString(src.Domain, 250),
		BrandName:         TruncateString(src.BrandName, 250),
		SourceCountry:     TruncateString(src.Country, 64),
		Language:          TruncateString(src.Language, 64),
		Rating:            TruncateString(src.Rating, 64),
		Score:             TruncateString(src.Score, 32),
		Orientation:       TruncateString(src.Orientation, 64),
		TypeOfContent:     TruncateString(src.TypeOfContent, 128),
		Topics:            src.Topics,
		Owner:             TruncateString(src.Owner, 250),
		TypeOfOwner:       TruncateString(src.TypeOfOwner, 128),
	}
}
