package config

import (
	"os"
	"time"
)

const (
	defaultRegion       = "ap-northeast-2"
	defaultMetricsAddr  = ":9090"
	defaultPollInterval = 10 * time.Second
)

func LoadFromEnv() {
	ArchivePath = os.Getenv("ARCHIVE_PATH")

	InfluxURL = os.Getenv("INFLUX_URL")
	InfluxToken = os.Getenv("INFLUX_TOKEN")
	InfluxOrg = os.Getenv("INFLUX_ORG")
	InfluxBucket = os.Getenv("INFLUX_BUCKET")

	RequestQueueURL = os.Getenv("REQUEST_QUEUE_URL")
	EventQueueURL = os.Getenv("EVENT_QUEUE_URL")

	AWSRegion = getEnv("AWS_REGION", defaultRegion)
	AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	MetricsAddr = getEnv("METRICS_ADDR", defaultMetricsAddr)

	PollInterval = defaultPollInterval
	if d, err := time.ParseDuration(os.Getenv("POLL_INTERVAL")); err == nil && d > 0 {
		PollInterval = d
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
