package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/checkpoint"
	"github.com/losardor/youtube-monitorin-pipeline/internal/collector"
	"github.com/losardor/youtube-monitorin-pipeline/internal/limiter"
	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/internal/quota"
	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/kafka"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"github.com/spf13/cobra"
)

var (
	sourcesPath    string
	startFrom      int
	maxChannels    int
	resume         bool
	checkpointPath string
	dailyQuota     int
	quotaBuffer    int
	sinkKind       string
)

var rootCmd = &cobra.Command{
	Use:           "run",
	Short:         "Collect channels, videos and comments from a source list",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runCollection,
}

func init() {
	rootCmd.Flags().StringVar(&sourcesPath, "sources", "", "path to the source CSV (required)")
	rootCmd.Flags().IntVar(&startFrom, "start-from", 0, "index of the first source to process")
	rootCmd.Flags().IntVar(&maxChannels, "max-channels", 0, "cap on sources processed this run (0 = no cap)")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "resume from the last checkpoint if one exists")
	rootCmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "override the checkpoint file path")
	rootCmd.Flags().IntVar(&dailyQuota, "daily-quota", 0, "override the daily quota limit")
	rootCmd.Flags().IntVar(&quotaBuffer, "quota-buffer", -1, "override the quota safety buffer")
	rootCmd.Flags().StringVar(&sinkKind, "sink", "db", "where collected pages go: db or kafka")
	rootCmd.MarkFlagRequired("sources")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCollection(cmd *cobra.Command, args []string) error {
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		return err
	}
	logger, _ := log.NewCslLogger()

	if checkpointPath != "" {
		config.Collector.CheckpointPath = checkpointPath
	}
	if dailyQuota > 0 {
		config.Quota.DailyLimit = dailyQuota
	}
	if quotaBuffer >= 0 {
		config.Quota.SafetyBuffer = quotaBuffer
	}

	// A missing credential is a fatal setup error: abort before any run
	// row exists or any source is touched.
	if err := checkCredentials(config); err != nil {
		return err
	}

	mysql, err := db.NewMysql(config)
	if err != nil {
		return err
	}

	channelMd, _ := model.NewChannel(config, logger, mysql)
	videoMd, _ := model.NewVideo(config, logger, mysql)
	commentMd, _ := model.NewComment(config, logger, mysql)
	captionMd, _ := model.NewCaptionTrack(config, logger, mysql)
	runMd, _ := model.NewCollectionRun(config, logger, mysql)
	eventMd, _ := model.NewQuotaEvent(config, logger, mysql)

	if err := mysql.Migrate(channelMd, videoMd, commentMd, captionMd, runMd, eventMd); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The remote pool resets at midnight Pacific; seed the ledger with
	// what earlier runs already spent since then.
	ledger := quota.NewLedger(config.Quota.DailyLimit, config.Quota.SafetyBuffer)
	seed, err := runMd.LastCumulativeQuota(quotaWindowStart())
	if err != nil {
		logger.Warn(ctx, "Cannot read prior quota spend, assuming zero: %v", err)
	}
	ledger.Seed(seed)
	logger.Info(ctx, "Quota ledger: %d already spent, %d available", ledger.CumulativeUsed(), ledger.Available())

	recorder, _ := collector.NewAuditedRecorder(ledger, eventMd)
	caller, _ := youtubeapi.NewCaller(logger, config, recorder)
	rateLimiter := limiter.NewRateLimiter(config.YoutubeApi.RequestsPerSecond)

	store, err := checkpoint.NewStore(config.Collector.CheckpointPath)
	if err != nil {
		return err
	}

	var sink collector.Sink
	if sinkKind == "kafka" {
		channelProducer := kafka.NewProducer(config, logger, config.Kafka.Producer.TopicChannel)
		videoProducer := kafka.NewProducer(config, logger, config.Kafka.Producer.TopicVideo)
		commentProducer := kafka.NewProducer(config, logger, config.Kafka.Producer.TopicComment)
		defer channelProducer.Close()
		defer videoProducer.Close()
		defer commentProducer.Close()
		sink, _ = collector.NewKafkaSink(logger, channelProducer, videoProducer, commentProducer)
	} else {
		sink, _ = collector.NewDbSink(channelMd, videoMd, commentMd, captionMd)
	}

	srcLoader, _ := source.NewLoader(logger)
	sources, err := srcLoader.Load(ctx, sourcesPath)
	if err != nil {
		return err
	}

	coll, err := collector.NewCollector(config, logger, caller, sink, ledger, rateLimiter, store, runMd)
	if err != nil {
		return err
	}
	coll.OnRunStart = recorder.SetRun

	if _, err := coll.Run(ctx, sources, collector.Options{
		StartFrom:   startFrom,
		MaxChannels: maxChannels,
		Resume:      resume,
	}); err != nil {
		return err
	}

	if ctx.Err() != nil {
		// Conventional exit code for death by SIGINT
		os.Exit(130)
	}
	return nil
}

func checkCredentials(config *cfg.Config) error {
	if config.YoutubeApi.ApiKey == "" {
		return errors.New("youtube api key is not set; provide YOUTUBE_API_KEY (or youtubeapi.apikey)")
	}
	return nil
}

func quotaWindowStart() time.Time {
	pacific, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		pacific = time.UTC
	}
	now := time.Now().In(pacific)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, pacific)
}
