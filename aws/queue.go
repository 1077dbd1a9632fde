package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// SQSAPI is the subset of the SQS API the queue client uses.
type SQSAPI interface {
	ListQueues(ctx context.Context, params *sqs.ListQueuesInput, optFns ...func(*sqs.Options)) (*sqs.ListQueuesOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
	DeleteMessageBatch(ctx context.Context, params *sqs.DeleteMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageBatchOutput, error)
}

// STSAPI is the subset of the STS API the queue client uses.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// QueueClient is a data-plane client scoped to one region and one set of
// brokered role credentials.
type QueueClient struct {
	sqsClient SQSAPI
	stsClient STSAPI
	region    string
}

// NewQueueClient builds a queue client for the given data-plane region
// using the exchanged role credentials.
func NewQueueClient(ctx context.Context, region string, creds Credentials) (*QueueClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			creds.SessionToken,
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &QueueClient{
		sqsClient: sqs.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
		region:    region,
	}, nil
}

// NewQueueClientFromAPIs builds a queue client over explicit API
// implementations.
func NewQueueClientFromAPIs(sqsAPI SQSAPI, stsAPI STSAPI, region string) *QueueClient {
	return &QueueClient{sqsClient: sqsAPI, stsClient: stsAPI, region: region}
}

// Region returns the data-plane region this client operates in.
func (c *QueueClient) Region() string {
	return c.region
}

// ListQueues lists queue URLs in the client's region, following pagination
// until exhausted.
func (c *QueueClient) ListQueues(ctx context.Context) ([]string, error) {
	var urls []string
	var nextToken *string

	for {
		resp, err := c.sqsClient.ListQueues(ctx, &sqs.ListQueuesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list queues: %w", err)
		}

		urls = append(urls, resp.QueueUrls...)

		nextToken = resp.NextToken
		if nextToken == nil {
			break
		}
	}

	return urls, nil
}

// CallerIdentity returns the identity behind the client's credentials.
func (c *QueueClient) CallerIdentity(ctx context.Context) (Identity, error) {
	out, err := c.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
