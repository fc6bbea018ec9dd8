package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	YoutubeApi struct {
		ApiKey            string
		ApiUrl            string
		MaxRetries        int
		RetryDelayMs      int
		RequestsPerSecond int
		ThrottleDelay     int
	}

	Quota struct {
		DailyLimit   int
		SafetyBuffer int
	}

	Collector struct {
		VideoPageSize          int
		CommentPageSize        int
		CommentOrder           string
		MaxVideosPerChannel    int // 0 means unlimited
		MaxCommentsPerVideo    int // 0 means unlimited
		IncludeCaptions        bool
		CheckpointEvery        int
		MaxConsecutiveFailures int
		DelayBetweenPagesMs    int
		DelayBetweenVideosMs   int
		DelayBetweenChannelsMs int
		CheckpointPath         string
	}

	KafkaProducer struct {
		TopicChannel string
		TopicVideo   string
		TopicComment string
	}

	Kafka struct {
		Brokers  []string
		Producer KafkaProducer
	}

	Viewer struct {
		Port int
	}
)

type Config struct {
	App        App
	Mysql      Mysql
	YoutubeApi YoutubeApi
	Quota      Quota
	Collector  Collector
	Kafka      Kafka
	Viewer     Viewer
}
