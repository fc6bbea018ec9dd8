package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/kafka"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

const (
	batchSize    = 100
	batchTimeout = 5 * time.Second
)

func main() {
	consumerType := flag.String("type", "", "Type of consumer to run (channel, video, comment)")
	flag.Parse()

	if *consumerType == "" {
		fmt.Println("Please specify a consumer type: -type=[channel|video|comment]")
		os.Exit(1)
	}

	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := log.NewCslLogger()

	mysql, err := db.NewMysql(config)
	if err != nil {
		logger.Error(context.Background(), "Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channelModel, _ := model.NewChannel(config, logger, mysql)
	videoModel, _ := model.NewVideo(config, logger, mysql)
	commentModel, _ := model.NewComment(config, logger, mysql)

	if err := mysql.Migrate(channelModel, videoModel, commentModel); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	switch *consumerType {
	case "channel":
		startConsumer(ctx, config, logger, config.Kafka.Producer.TopicChannel, "channel", "channel-consumer-group", channelModel.CreateBatch)
	case "video":
		startConsumer(ctx, config, logger, config.Kafka.Producer.TopicVideo, "video", "video-consumer-group", videoModel.CreateBatch)
	case "comment":
		startConsumer(ctx, config, logger, config.Kafka.Producer.TopicComment, "comment", "comment-consumer-group", commentModel.CreateBatch)
	default:
		logger.Error(ctx, "Unknown consumer type: %s", *consumerType)
		os.Exit(1)
	}

	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

// startConsumer wires one topic into a batching writer: messages queue up
// and are flushed to MySQL when the batch fills or the timeout fires.
func startConsumer[T any](ctx context.Context, config *cfg.Config, logger log.Logger, topic, key, group string, save func([]T) error) {
	consumer := kafka.NewConsumer(config, logger, topic, group)

	messages := make(chan T, batchSize*2)
	go processBatches(ctx, messages, logger, key, save)

	consumer.RegisterHandler(key, func(data []byte) error {
		var msg T
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal %s message: %w", key, err)
		}

		select {
		case messages <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "%s consumer error: %v", key, err)
		}
	}()

	logger.Info(ctx, "%s consumer started", key)
}

func processBatches[T any](ctx context.Context, messages <-chan T, logger log.Logger, entity string, save func([]T) error) {
	var batch []T
	timer := time.NewTimer(batchTimeout)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		logger.Info(ctx, "Processing batch of %d %s messages", len(batch), entity)
		if err := save(batch); err != nil {
			logger.Error(ctx, "Failed to save %s batch: %v", entity, err)
		}
		batch = nil
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(batchTimeout)
		}
	}
}
