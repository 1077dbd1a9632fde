package auth

import (
	"context"
	"fmt"

	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
)

// Discovery materializes the accounts and roles reachable with an SSO
// session's access token as environment descriptors.
type Discovery struct {
	clients *aws.ClientRegistry
}

// NewDiscovery creates a discovery over the given client registry.
func NewDiscovery(clients *aws.ClientRegistry) *Discovery {
	return &Discovery{clients: clients}
}

// Discover lists every (account, role) pair the session can reach, one
// descriptor per pair, accounts outer and roles inner in provider
// pagination order. Both pagination levels are fully drained; a failed
// page fails the whole call rather than returning a partial result.
func (d *Discovery) Discover(ctx context.Context, sess session.SSOSession) ([]session.Environment, error) {
	client, err := d.clients.Client(ctx, sess.Region)
	if err != nil {
		return nil, err
	}

	accounts, err := client.ListAccounts(ctx, sess.AccessToken)
	if err != nil {
		return nil, err
	}

	var envs []session.Environment
	for _, account := range accounts {
		roles, err := client.ListAccountRoles(ctx, sess.AccessToken, account.ID)
		if err != nil {
			return nil, err
		}

		label := account.Name
		if label == "" {
			label = account.ID
		}
		for _, role := range roles {
			envs = append(envs, session.Environment{
				ID:        fmt.Sprintf("%s-%s", account.ID, role),
				Label:     fmt.Sprintf("%s (%s)", label, role),
				Regions:   []string{sess.Region},
				AccountID: account.ID,
				RoleName:  role,
			})
		}
	}

	return envs, nil
}
