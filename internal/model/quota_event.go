package model

import (
	"context"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

// QuotaEvent is the per-call audit trail of quota spending. One row per
// successful API call, so the ledger can be reconstructed after the fact.
type QuotaEvent struct {
	Model
	ID              uint      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	RunId           uint      `json:"run_id" gorm:"column:run_id;index;not null"`
	Method          string    `json:"method" gorm:"column:method;type:varchar(64);not null"`
	Units           int       `json:"units" gorm:"column:units;not null"`
	CumulativeAfter int       `json:"cumulative_after" gorm:"column:cumulative_after;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func NewQuotaEvent(config *cfg.Config, logger log.Logger, mysql *db.Mysql) (*QuotaEvent, error) {
	return &QuotaEvent{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  mysql,
		},
	}, nil
}

func (q *QuotaEvent) TableName() string {
	return "quota_events"
}

// Record inserts one spending event. Failures are logged and swallowed:
// a missing audit row must never abort collection.
func (q *QuotaEvent) Record(runId uint, method string, units, cumulativeAfter int) {
	ctx := context.Background()

	db, err := q.Mysql.Db()
	if err != nil {
		q.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return
	}

	event := &QuotaEvent{
		RunId:           runId,
		Method:          method,
		Units:           units,
		CumulativeAfter: cumulativeAfter,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := db.Create(event).Error; err != nil {
		q.Logger.Error(ctx, "Failed to record quota event for %s: %v", method, err)
	}
}
