package event

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type MessageSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSEventPublisher struct {
	client MessageSender
	logger *zap.Logger

	queueURL string
}

var (
	_ Publisher = (*SQSEventPublisher)(nil)
)

func NewSQSEventBus(client MessageSender, logger *zap.Logger, queueURL string) *SQSEventPublisher {
	return &SQSEventPublisher{
		client:   client,
		logger:   logger,
		queueURL: queueURL,
	}
}

func (p *SQSEventPublisher) Publish(ctx context.Context, e SimulationEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshalling payload")
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(payload)),
	}

	out, err := p.client.SendMessage(ctx, input)
	if err != nil {
		return errors.Wrap(err, "sending message")
	}

	if out != nil && out.MessageId != nil {
		p.logger.Debug("event published",
			zap.String("topic", Topic),
			zap.String("messageID", *out.MessageId),
		)
	}

	return nil
}
