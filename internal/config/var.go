package config

import "time"

var (
	ArchivePath string
)

var (
	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string
)

var (
	RequestQueueURL string
	EventQueueURL   string

	AWSRegion       string
	AccessKeyID     string
	SecretAccessKey string
)

var (
	MetricsAddr  string
	PollInterval time.Duration
)
