package aws

import (
	"context"
	"sync"
)

// ClientFactory builds an identity-plane client for a region.
type ClientFactory func(ctx context.Context, region string) (*Client, error)

// ClientRegistry caches identity-plane clients and their OIDC client
// registrations per identity-provider region. Registration happens once
// per region and is reused for the process lifetime.
type ClientRegistry struct {
	factory ClientFactory

	mu         sync.Mutex
	clients    map[string]*Client
	registered map[string]RegisteredClient
}

// NewClientRegistry creates a registry backed by the given factory. A nil
// factory defaults to NewClient.
func NewClientRegistry(factory ClientFactory) *ClientRegistry {
	if factory == nil {
		factory = NewClient
	}
	return &ClientRegistry{
		factory:    factory,
		clients:    make(map[string]*Client),
		registered: make(map[string]RegisteredClient),
	}
}

// Client returns the cached identity-plane client for the region, creating
// it on first use.
func (r *ClientRegistry) Client(ctx context.Context, region string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clientLocked(ctx, region)
}

// Registered returns the region's client together with its OIDC client
// registration, registering on first use.
func (r *ClientRegistry) Registered(ctx context.Context, region string) (*Client, RegisteredClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, err := r.clientLocked(ctx, region)
	if err != nil {
		return nil, RegisteredClient{}, err
	}

	if rc, ok := r.registered[region]; ok {
		return client, rc, nil
	}
	rc, err := client.RegisterClient(ctx)
	if err != nil {
		return nil, RegisteredClient{}, err
	}
	r.registered[region] = rc
	return client, rc, nil
}

func (r *ClientRegistry) clientLocked(ctx context.Context, region string) (*Client, error) {
	if client, ok := r.clients[region]; ok {
		return client, nil
	}
	client, err := r.factory(ctx, region)
	if err != nil {
		return nil, err
	}
	r.clients[region] = client
	return client, nil
}
