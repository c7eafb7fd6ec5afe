package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/oneee-playground/schedsim/internal/archive/storage"
	conf "github.com/oneee-playground/schedsim/internal/config"
	"github.com/oneee-playground/schedsim/internal/event"
	"github.com/oneee-playground/schedsim/internal/job"
	"github.com/oneee-playground/schedsim/internal/metric"
	"github.com/oneee-playground/schedsim/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	conf.LoadFromEnv()

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stdout), zap.DebugLevel,
	))
	defer logger.Sync()

	if conf.RequestQueueURL == "" {
		logger.Fatal("REQUEST_QUEUE_URL is not set")
	}

	awsConfig := aws.Config{
		Region:      conf.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
	}

	sqsClient := sqs.NewFromConfig(awsConfig)

	serverOpts := server.ServerOpts{
		JobPoller:    job.NewPoller(sqsClient, conf.RequestQueueURL),
		PollInterval: conf.PollInterval,
	}

	if conf.EventQueueURL != "" {
		serverOpts.EventPublisher = event.NewSQSEventBus(sqsClient, logger, conf.EventQueueURL)
	}

	if conf.ArchivePath != "" {
		serverOpts.Archive = storage.NewFSStorage(conf.ArchivePath)
	}

	if conf.InfluxURL != "" {
		influxClient := influxdb2.NewClientWithOptions(conf.InfluxURL, conf.InfluxToken, influxdb2.DefaultOptions())
		metricStorage := metric.NewStorage(influxClient)
		defer metricStorage.Close()

		session, errchan := metricStorage.WriteSession(conf.InfluxOrg, conf.InfluxBucket)
		serverOpts.MetricWriter = session

		go func() {
			for err := range errchan {
				logger.Error("failed to write metrics", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := metric.Serve(conf.MetricsAddr, logger); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(logger, serverOpts)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("serve failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
