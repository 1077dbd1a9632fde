package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const redriveBatchSize = 10

// RedriveMessage is the caller-supplied subset of a previously fetched
// message to send back to a target queue.
type RedriveMessage struct {
	MessageID     string
	ReceiptHandle string
	Body          string
}

// RedriveSummary accumulates per-message outcomes across all batches of
// one redrive call.
type RedriveSummary struct {
	Sent         int
	SendFailed   int
	Deleted      int
	DeleteFailed int
}

// Redrive sends the messages to the target queue in batches of at most
// ten, strictly in order, and when deleteAfterSend is set deletes the
// successfully sent ones from the source queue. Per-message failures are
// accumulated in the summary, never returned as errors; a failed send for
// one message does not block the rest. A transport-level error aborts the
// call and is returned with the summary accumulated so far.
func (c *QueueClient) Redrive(ctx context.Context, sourceURL, targetURL string, messages []RedriveMessage, deleteAfterSend bool) (RedriveSummary, error) {
	var summary RedriveSummary

	for start := 0; start < len(messages); start += redriveBatchSize {
		batch := messages[start:min(start+redriveBatchSize, len(messages))]

		// Entry ids are scoped per request by the provider, so make them
		// globally unique across the call to match failure lists back
		// unambiguously.
		entries := make([]sqstypes.SendMessageBatchRequestEntry, len(batch))
		byEntryID := make(map[string]RedriveMessage, len(batch))
		for i, msg := range batch {
			entryID := fmt.Sprintf("%d-%s", start+i, msg.MessageID)
			entries[i] = sqstypes.SendMessageBatchRequestEntry{
				Id:          aws.String(entryID),
				MessageBody: aws.String(msg.Body),
			}
			byEntryID[entryID] = msg
		}

		sendOut, err := c.sqsClient.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
			QueueUrl: aws.String(targetURL),
			Entries:  entries,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to send message batch: %w", err)
		}

		sendFailed := make(map[string]struct{}, len(sendOut.Failed))
		for _, failure := range sendOut.Failed {
			sendFailed[aws.ToString(failure.Id)] = struct{}{}
		}

		var deleteEntries []sqstypes.DeleteMessageBatchRequestEntry
		for _, entry := range entries {
			entryID := aws.ToString(entry.Id)
			if _, failed := sendFailed[entryID]; failed {
				summary.SendFailed++
				continue
			}
			summary.Sent++
			if deleteAfterSend {
				deleteEntries = append(deleteEntries, sqstypes.DeleteMessageBatchRequestEntry{
					Id:            entry.Id,
					ReceiptHandle: aws.String(byEntryID[entryID].ReceiptHandle),
				})
			}
		}

		if len(deleteEntries) == 0 {
			continue
		}

		deleteOut, err := c.sqsClient.DeleteMessageBatch(ctx, &sqs.DeleteMessageBatchInput{
			QueueUrl: aws.String(sourceURL),
			Entries:  deleteEntries,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to delete message batch: %w", err)
		}
		summary.DeleteFailed += len(deleteOut.Failed)
		summary.Deleted += len(deleteEntries) - len(deleteOut.Failed)
	}

	return summary, nil
}
