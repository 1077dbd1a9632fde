package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	receiveBatchSize = 10
	minFetchMessages = 1
	maxFetchMessages = 5000
)

// FetchOptions tune a fetch call. MaxMessages is clamped into [1, 5000].
// WaitTimeSeconds and VisibilityTimeout are passed through to the provider
// when positive.
type FetchOptions struct {
	MaxMessages       int
	WaitTimeSeconds   int32
	VisibilityTimeout int32
}

// FetchMessages retrieves up to MaxMessages messages from the queue,
// deduplicated by message id with first-seen order preserved.
//
// The loop stops on an empty batch (queue drained) or a batch that
// contributed no new messages. The latter is a heuristic for the
// redelivery cycle where visibility timeouts expire and the same messages
// come back forever; it can stop early when duplicates and fresh messages
// interleave across batch boundaries.
func (c *QueueClient) FetchMessages(ctx context.Context, queueURL string, opts FetchOptions) ([]Message, error) {
	maxMessages := opts.MaxMessages
	if maxMessages < minFetchMessages {
		maxMessages = minFetchMessages
	}
	if maxMessages > maxFetchMessages {
		maxMessages = maxFetchMessages
	}

	seen := make(map[string]struct{})
	var messages []Message

	for len(messages) < maxMessages {
		batchSize := min(receiveBatchSize, maxMessages-len(messages))

		input := &sqs.ReceiveMessageInput{
			QueueUrl:              aws.String(queueURL),
			MaxNumberOfMessages:   int32(batchSize),
			MessageAttributeNames: []string{"All"},
		}
		if opts.WaitTimeSeconds > 0 {
			input.WaitTimeSeconds = opts.WaitTimeSeconds
		}
		if opts.VisibilityTimeout > 0 {
			input.VisibilityTimeout = opts.VisibilityTimeout
		}

		resp, err := c.sqsClient.ReceiveMessage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to receive messages: %w", err)
		}
		if len(resp.Messages) == 0 {
			break
		}

		newInBatch := 0
		for _, raw := range resp.Messages {
			id := aws.ToString(raw.MessageId)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			newInBatch++
			messages = append(messages, fromSQSMessage(raw))
			if len(messages) == maxMessages {
				break
			}
		}
		if newInBatch == 0 {
			break
		}
	}

	return messages, nil
}

func fromSQSMessage(raw sqstypes.Message) Message {
	msg := Message{
		MessageID:     aws.ToString(raw.MessageId),
		ReceiptHandle: aws.ToString(raw.ReceiptHandle),
		Body:          aws.ToString(raw.Body),
	}
	if len(raw.MessageAttributes) > 0 {
		msg.Attributes = make(map[string]string, len(raw.MessageAttributes))
		for name, attr := range raw.MessageAttributes {
			msg.Attributes[name] = aws.ToString(attr.StringValue)
		}
	}
	return msg
}
