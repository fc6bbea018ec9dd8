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

// Comment stores both top-level comments and replies in one table;
// replies carry the parent comment id, top-level rows leave it empty.
type Comment struct {
	Model
	CommentId       string    `json:"comment_id" gorm:"column:comment_id;type:varchar(64);primaryKey"`
	VideoId         string    `json:"video_id" gorm:"column:video_id;type:varchar(16);index;not null"`
	ParentId        string    `json:"parent_id" gorm:"column:parent_id;type:varchar(64);index"`
	Author          string    `json:"author" gorm:"column:author;type:varchar(255)"`
	AuthorChannelId string    `json:"author_channel_id" gorm:"column:author_channel_id;type:varchar(32)"`
	Text            string    `json:"text" gorm:"column:text;type:text"`
	LikeCount       int64     `json:"like_count" gorm:"column:like_count;default:0"`
	ReplyCount      int64     `json:"reply_count" gorm:"column:reply_count;default:0"`
	PublishedAt     string    `json:"published_at" gorm:"column:published_at;type:varchar(32)"`
	EditedAt        string    `json:"edited_at" gorm:"column:edited_at;type:varchar(32)"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewComment(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*Comment, error) {
	return &Comment{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (c *Comment) TableName() string {
	return "comments"
}

var commentUpdateColumns = []string{
	"author", "author_channel_id", "text",
	"like_count", "reply_count", "edited_at", "updated_at",
}

func (c *Comment) UpsertBatch(records []Comment) error {
	if len(records) == 0 {
		return nil
	}

	ctx := context.Background()
	db, err := c.Mysql.Db()
	if err != nil {
		c.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	now := time.Now()
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}},
			DoUpdates: clause.AssignmentColumns(commentUpdateColumns),
		}).CreateInBatches(records, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert comments: %w", result.Error)
		}
		return nil
	})
}

func (c *Comment) CreateBatch(messages []CommentMessage) error {
	records := make([]Comment, 0, len(messages))
	for _, msg := range messages {
		records = append(records, *CommentFromMessage(msg))
	}
	return c.UpsertBatch(records)
}

func CommentFromAPI(api youtubeapi.Comment) *Comment {
	return &Comment{
		CommentId:       api.CommentId,
		VideoId:         api.VideoId,
		ParentId:        api.ParentId,
		Author:          TruncateString(api.Author, 250),
		AuthorChannelId: api.AuthorChannelId,
		Text:            api.Text,
		LikeCount:       api.LikeCount,
		ReplyCount:      api.ReplyCount,
		PublishedAt:     api.PublishedAt,
		EditedAt:        api.UpdatedAt,
	}
}
