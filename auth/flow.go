package auth

import (
	"context"
	"fmt"

	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/config"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
)

// ProfileSource resolves configured profiles by name.
type ProfileSource interface {
	Profile(name string) (config.Profile, bool)
}

// PollResult is the outcome of one poll attempt. Pending means the user
// has not finished the browser-side authorization yet; the caller should
// wait the advertised interval and poll again. A non-pending result means
// the login completed and the session was stored.
type PollResult struct {
	Pending bool
}

// DeviceFlow drives the OIDC device-authorization login against the
// identity provider of a profile's SSO session.
type DeviceFlow struct {
	profiles ProfileSource
	clients  *aws.ClientRegistry
	sessions *session.Store
}

// NewDeviceFlow creates a device flow over the given collaborators.
func NewDeviceFlow(profiles ProfileSource, clients *aws.ClientRegistry, sessions *session.Store) *DeviceFlow {
	return &DeviceFlow{profiles: profiles, clients: clients, sessions: sessions}
}

// Start begins a device authorization for the named profile. The returned
// authorization is handed to the user (verification URI, user code) and
// back to Poll (device code).
func (f *DeviceFlow) Start(ctx context.Context, profileName string) (aws.DeviceAuthorization, error) {
	profile, ok := f.profiles.Profile(profileName)
	if !ok {
		return aws.DeviceAuthorization{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profileName)
	}

	client, registered, err := f.clients.Registered(ctx, profile.Session.Region)
	if err != nil {
		return aws.DeviceAuthorization{}, err
	}

	return client.StartDeviceAuthorization(ctx, registered, profile.Session.StartURL)
}

// Poll attempts the token exchange for a started authorization. Each call
// is independent; the interval between calls is the caller's
// responsibility. On completion the SSO session is stored under sessionID.
// Provider errors other than the pending signal are returned unchanged.
func (f *DeviceFlow) Poll(ctx context.Context, profileName, deviceCode, sessionID string) (PollResult, error) {
	// Re-resolve: the profile may have disappeared between start and poll.
	profile, ok := f.profiles.Profile(profileName)
	if !ok {
		return PollResult{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profileName)
	}

	client, registered, err := f.clients.Registered(ctx, profile.Session.Region)
	if err != nil {
		return PollResult{}, err
	}

	token, err := client.CreateToken(ctx, registered, deviceCode)
	if err != nil {
		if aws.IsAuthorizationPending(err) {
			return PollResult{Pending: true}, nil
		}
		return PollResult{}, err
	}

	f.sessions.Put(sessionID, session.SSOSession{
		SessionName: profile.Session.Name,
		Region:      profile.Session.Region,
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
	})
	return PollResult{}, nil
}
