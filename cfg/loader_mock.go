package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "youtube-monitoring-pipeline",
			Version: "0.0.1",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "youtube_monitoring",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// YoutubeApi
		YoutubeApi: YoutubeApi{
			ApiKey:            "",
			ApiUrl:            "https://www.googleapis.com/youtube/v3",
			MaxRetries:        3,
			RetryDelayMs:      2000,
			RequestsPerSecond: 5,
			ThrottleDelay:     200,
		},

		// Quota
		Quota: Quota{
			DailyLimit:   10000,
			SafetyBuffer: 500,
		},

		// Collector
		Collector: Collector{
			VideoPageSize:          50,
			CommentPageSize:        100,
			CommentOrder:           "time",
			MaxVideosPerChannel:    0,
			MaxCommentsPerVideo:    0,
			IncludeCaptions:        false,
			CheckpointEvery:        10,
			MaxConsecutiveFailures: 5,
			DelayBetweenPagesMs:    300,
			DelayBetweenVideosMs:   500,
			DelayBetweenChannelsMs: 2000,
			CheckpointPath:         "data/checkpoints/latest_checkpoint.json",
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{"127.0.0.1:9092"},
			Producer: KafkaProducer{
				TopicChannel: "youtube.channels",
				TopicVideo:   "youtube.videos",
				TopicComment: "youtube.comments",
			},
		},

		// Viewer
		Viewer: Viewer{
			Port: 8080,
		},
	}, nil
}
