package job

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/pkg/errors"
)

var NoErrEmptyRequests = errors.New("requests are empty")

type Poller interface {
	Poll(ctx context.Context) (handle string, req Request, err error)
	MarkAsDone(ctx context.Context, handle string) (err error)
}

// ReceiveDeleter is the subset of *sqs.Client used by the poller.
type ReceiveDeleter interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type poller struct {
	client   ReceiveDeleter
	queueURL string
}

var _ Poller = (*poller)(nil)

func NewPoller(client ReceiveDeleter, queueURL string) *poller {
	return &poller{
		client:   client,
		queueURL: queueURL,
	}
}

// Poll receives one simulation request. The returned handle is the message's
// receipt handle and must be passed to MarkAsDone.
func (p *poller) Poll(ctx context.Context) (handle string, req Request, err error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(p.queueURL),
		MaxNumberOfMessages: 1,
	}

	result, err := p.client.ReceiveMessage(ctx, input)
	if err != nil {
		return "", Request{}, errors.Wrap(err, "receiving message")
	}

	if len(result.Messages) == 0 {
		return "", Request{}, NoErrEmptyRequests
	}

	msg := result.Messages[0]
	if msg.ReceiptHandle != nil {
		handle = *msg.ReceiptHandle
	}

	if msg.Body == nil {
		return handle, Request{}, errors.Wrap(ErrInvalidDocument, "empty message body")
	}

	decoded, err := DecodeRequest([]byte(*msg.Body))
	if err != nil {
		return handle, Request{}, errors.Wrap(err, "failed to decode request")
	}

	return handle, decoded, nil
}

func (p *poller) MarkAsDone(ctx context.Context, handle string) (err error) {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.queueURL),
		ReceiptHandle: aws.String(handle),
	}

	if _, err = p.client.DeleteMessage(ctx, input); err != nil {
		return errors.Wrap(err, "failed to delete message")
	}

	return nil
}
