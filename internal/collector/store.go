package collector

import (
	"context"
	"sync"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/internal/checkpoint"
	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/internal/quota"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/kafka"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

// Sink receives collected records one durable page at a time. The
// collector does not care whether pages land in MySQL or on a Kafka
// topic; that choice is made once at startup.
type Sink interface {
	SaveChannel(ctx context.Context, record *model.Channel) error
	SaveVideos(ctx context.Context, records []model.Video) error
	SaveComments(ctx context.Context, records []model.Comment) error
	SaveCaptionTracks(ctx context.Context, videoId string, tracks []youtubeapi.CaptionTrack) error
}

// RunRecorder persists run lifecycle rows. model.CollectionRun satisfies it.
type RunRecorder interface {
	Begin() (uint, error)
	End(runId uint, status, stopReason string, stats checkpoint.Stats) error
	LastCumulativeQuota(since time.Time) (int, error)
}

// DbSink writes pages straight into MySQL through the model layer.
type DbSink struct {
	Channels *model.Channel
	Videos   *model.Video
	Comments *model.Comment
	Captions *model.CaptionTrack
}

func NewDbSink(channels *model.Channel, videos *model.Video, comments *model.Comment, captions *model.CaptionTrack) (*DbSink, error) {
	return &DbSink{
		Channels: channels,
		Videos:   videos,
		Comments: comments,
		Captions: captions,
	}, nil
}

func (s *DbSink) SaveChannel(ctx context.Context, record *model.Channel) error {
	return s.Channels.Upsert(record)
}

func (s *DbSink) SaveVideos(ctx context.Context, records []model.Video) error {
	return s.Videos.UpsertBatch(records)
}

func (s *DbSink) SaveComments(ctx context.Context, records []model.Comment) error {
	return s.Comments.UpsertBatch(records)
}

func (s *DbSink) SaveCaptionTracks(ctx context.Context, videoId string, tracks []youtubeapi.CaptionTrack) error {
	return s.Captions.UpsertBatch(videoId, tracks)
}

// KafkaSink publishes pages to per-entity topics; a consumer drains them
// into MySQL in batches.
type KafkaSink struct {
	Logger          log.Logger
	ChannelProducer *kafka.Producer
	VideoProducer   *kafka.Producer
	CommentProducer *kafka.Producer
}

func NewKafkaSink(logger log.Logger, channelProducer, videoProducer, commentProducer *kafka.Producer) (*KafkaSink, error) {
	return &KafkaSink{
		Logger:          logger,
		ChannelProducer: channelProducer,
		VideoProducer:   videoProducer,
		CommentProducer: commentProducer,
	}, nil
}

func (s *KafkaSink) SaveChannel(ctx context.Context, record *model.Channel) error {
	return s.ChannelProducer.Publish(ctx, "channel", record.ToMessage())
}

func (s *KafkaSink) SaveVideos(ctx context.Context, records []model.Video) error {
	for i := range records {
		if err := s.VideoProducer.Publish(ctx, "video", records[i].ToMessage()); err != nil {
			return err
		}
	}
	return nil
}

func (s *KafkaSink) SaveComments(ctx context.Context, records []model.Comment) error {
	for i := range records {
		if err := s.CommentProducer.Publish(ctx, "comment", records[i].ToMessage()); err != nil {
			return err
		}
	}
	return nil
}

// Caption listings have no topic of their own; the export pipeline only
// carries the three primary entities.
func (s *KafkaSink) SaveCaptionTracks(ctx context.Context, videoId string, tracks []youtubeapi.CaptionTrack) error {
	return nil
}

// AuditedRecorder charges the ledger and writes one quota_events row per
// successful API call, tagged with the active run.
type AuditedRecorder struct {
	Ledger *quota.Ledger
	Events *model.QuotaEvent

	mu    sync.Mutex
	runId uint
}

func NewAuditedRecorder(ledger *quota.Ledger, events *model.QuotaEvent) (*AuditedRecorder, error) {
	return &AuditedRecorder{
		Ledger: ledger,
		Events: events,
	}, nil
}

func (a *AuditedRecorder) SetRun(runId uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runId = runId
}

func (a *AuditedRecorder) RecordMethodCost(method string, units int) {
	a.Ledger.RecordMethodCost(method, units)

	a.mu.Lock()
	runId := a.runId
	a.mu.Unlock()
	if a.Events != nil && runId != 0 {
		a.Events.Record(runId, method, units, a.Ledger.CumulativeUsed())
	}
}
