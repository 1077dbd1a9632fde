package auth

import (
	"context"
	"fmt"

	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
)

// QueueClientFactory builds a data-plane client from exchanged
// credentials.
type QueueClientFactory func(ctx context.Context, region string, creds aws.Credentials) (*aws.QueueClient, error)

// Broker exchanges an active SSO session for a queue client scoped to one
// environment's account/role in a requested data-plane region.
type Broker struct {
	clients      *aws.ClientRegistry
	sessions     *session.Store
	environments *session.EnvironmentRegistry
	newQueue     QueueClientFactory
}

// NewBroker creates a broker. A nil factory defaults to
// aws.NewQueueClient.
func NewBroker(clients *aws.ClientRegistry, sessions *session.Store, environments *session.EnvironmentRegistry, newQueue QueueClientFactory) *Broker {
	if newQueue == nil {
		newQueue = aws.NewQueueClient
	}
	return &Broker{
		clients:      clients,
		sessions:     sessions,
		environments: environments,
		newQueue:     newQueue,
	}
}

// Resolve returns a queue client holding short-lived credentials for the
// environment's account/role, scoped to the requested data-plane region.
// The region here is distinct from the SSO identity-provider region the
// token exchange goes through.
func (b *Broker) Resolve(ctx context.Context, environmentID, region, sessionID string) (*aws.QueueClient, error) {
	env, ok := b.environments.Get(sessionID, environmentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnvironment, environmentID)
	}

	sess, ok := b.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNoActiveSession
	}

	if env.AccountID == "" || env.RoleName == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAccountInfo, environmentID)
	}

	client, err := b.clients.Client(ctx, sess.Region)
	if err != nil {
		return nil, err
	}

	creds, err := client.GetRoleCredentials(ctx, sess.AccessToken, env.AccountID, env.RoleName)
	if err != nil {
		return nil, err
	}

	return b.newQueue(ctx, region, creds)
}

// Identity resolves credentials for the environment and returns the
// caller identity behind them.
func (b *Broker) Identity(ctx context.Context, environmentID, region, sessionID string) (aws.Identity, error) {
	client, err := b.Resolve(ctx, environmentID, region, sessionID)
	if err != nil {
		return aws.Identity{}, err
	}
	return client.CallerIdentity(ctx)
}
