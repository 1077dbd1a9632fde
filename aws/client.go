package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	oidctypes "github.com/aws/aws-sdk-go-v2/service/ssooidc/types"
)

const oidcClientName = "sqs-dlq-redrive-webapp"

var (
	// ErrIncompleteResponse reports an identity-provider response missing
	// fields its contract requires. Fatal, never retried.
	ErrIncompleteResponse = errors.New("incomplete response from identity provider")

	// ErrIncompleteCredentials reports a credential exchange response
	// missing the access key or secret.
	ErrIncompleteCredentials = errors.New("incomplete credentials from identity provider")
)

// SSOAPI is the subset of the SSO portal API the client uses.
type SSOAPI interface {
	ListAccounts(ctx context.Context, params *sso.ListAccountsInput, optFns ...func(*sso.Options)) (*sso.ListAccountsOutput, error)
	ListAccountRoles(ctx context.Context, params *sso.ListAccountRolesInput, optFns ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error)
	GetRoleCredentials(ctx context.Context, params *sso.GetRoleCredentialsInput, optFns ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error)
}

// OIDCAPI is the subset of the SSO OIDC API the client uses.
type OIDCAPI interface {
	RegisterClient(ctx context.Context, params *ssooidc.RegisterClientInput, optFns ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error)
	StartDeviceAuthorization(ctx context.Context, params *ssooidc.StartDeviceAuthorizationInput, optFns ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error)
	CreateToken(ctx context.Context, params *ssooidc.CreateTokenInput, optFns ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error)
}

// Client bundles the identity-plane service clients for one
// identity-provider region.
type Client struct {
	ssoClient  SSOAPI
	oidcClient OIDCAPI
	region     string
}

// NewClient initializes identity-plane clients for a specific region.
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &Client{
		ssoClient:  sso.NewFromConfig(cfg),
		oidcClient: ssooidc.NewFromConfig(cfg),
		region:     region,
	}, nil
}

// NewClientFromAPIs builds a client over explicit API implementations.
func NewClientFromAPIs(ssoAPI SSOAPI, oidcAPI OIDCAPI, region string) *Client {
	return &Client{ssoClient: ssoAPI, oidcClient: oidcAPI, region: region}
}

// Region returns the identity-provider region this client talks to.
func (c *Client) Region() string {
	return c.region
}

// RegisterClient registers a public OIDC client with the identity provider.
func (c *Client) RegisterClient(ctx context.Context) (RegisteredClient, error) {
	out, err := c.oidcClient.RegisterClient(ctx, &ssooidc.RegisterClientInput{
		ClientName: aws.String(oidcClientName),
		ClientType: aws.String("public"),
	})
	if err != nil {
		return RegisteredClient{}, fmt.Errorf("failed to register OIDC client: %w", err)
	}
	if out.ClientId == nil || out.ClientSecret == nil {
		return RegisteredClient{}, fmt.Errorf("client registration: %w", ErrIncompleteResponse)
	}

	return RegisteredClient{
		ClientID:     *out.ClientId,
		ClientSecret: *out.ClientSecret,
	}, nil
}

// StartDeviceAuthorization requests a device authorization for the given
// start URL. The provider must return a device code, verification URI,
// user code, polling interval, and expiry.
func (c *Client) StartDeviceAuthorization(ctx context.Context, client RegisteredClient, startURL string) (DeviceAuthorization, error) {
	out, err := c.oidcClient.StartDeviceAuthorization(ctx, &ssooidc.StartDeviceAuthorizationInput{
		ClientId:     aws.String(client.ClientID),
		ClientSecret: aws.String(client.ClientSecret),
		StartUrl:     aws.String(startURL),
	})
	if err != nil {
		return DeviceAuthorization{}, fmt.Errorf("failed to start device authorization: %w", err)
	}
	if out.DeviceCode == nil || out.VerificationUriComplete == nil || out.UserCode == nil || out.Interval == 0 || out.ExpiresIn == 0 {
		return DeviceAuthorization{}, fmt.Errorf("device authorization: %w", ErrIncompleteResponse)
	}

	return DeviceAuthorization{
		DeviceCode:      *out.DeviceCode,
		VerificationURI: *out.VerificationUriComplete,
		UserCode:        *out.UserCode,
		Interval:        out.Interval,
		ExpiresAt:       time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}, nil
}

// CreateToken attempts the device-grant token exchange. A provider error is
// returned unchanged so the caller can classify it; use
// IsAuthorizationPending for the expected not-yet-approved case.
func (c *Client) CreateToken(ctx context.Context, client RegisteredClient, deviceCode string) (Token, error) {
	out, err := c.oidcClient.CreateToken(ctx, &ssooidc.CreateTokenInput{
		ClientId:     aws.String(client.ClientID),
		ClientSecret: aws.String(client.ClientSecret),
		DeviceCode:   aws.String(deviceCode),
		GrantType:    aws.String("urn:ietf:params:oauth:grant-type:device_code"),
	})
	if err != nil {
		return Token{}, err
	}
	if out.AccessToken == nil || out.ExpiresIn == 0 {
		return Token{}, fmt.Errorf("token exchange: %w", ErrIncompleteResponse)
	}

	return Token{
		AccessToken: *out.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}, nil
}

// IsAuthorizationPending reports whether err is the provider signalling
// that the user has not yet completed the device authorization.
func IsAuthorizationPending(err error) bool {
	var pending *oidctypes.AuthorizationPendingException
	return errors.As(err, &pending)
}

// ListAccounts lists all accounts reachable with the access token,
// following pagination until exhausted. Accounts without an id are
// skipped.
func (c *Client) ListAccounts(ctx context.Context, accessToken string) ([]Account, error) {
	var accounts []Account
	var nextToken *string

	for {
		resp, err := c.ssoClient.ListAccounts(ctx, &sso.ListAccountsInput{
			AccessToken: aws.String(accessToken),
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}

		for _, acc := range resp.AccountList {
			if acc.AccountId == nil {
				continue
			}
			account := Account{ID: *acc.AccountId}
			if acc.AccountName != nil {
				account.Name = *acc.AccountName
			}
			accounts = append(accounts, account)
		}

		nextToken = resp.NextToken
		if nextToken == nil {
			break
		}
	}

	return accounts, nil
}

// ListAccountRoles lists the roles available in an account, following
// pagination until exhausted. Roles without a name are skipped.
func (c *Client) ListAccountRoles(ctx context.Context, accessToken, accountID string) ([]string, error) {
	var roles []string
	var nextToken *string

	for {
		resp, err := c.ssoClient.ListAccountRoles(ctx, &sso.ListAccountRolesInput{
			AccessToken: aws.String(accessToken),
			AccountId:   aws.String(accountID),
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list roles for account %s: %w", accountID, err)
		}

		for _, role := range resp.RoleList {
			if role.RoleName == nil {
				continue
			}
			roles = append(roles, *role.RoleName)
		}

		nextToken = resp.NextToken
		if nextToken == nil {
			break
		}
	}

	return roles, nil
}

// GetRoleCredentials exchanges the SSO access token for short-lived
// credentials scoped to one account/role pair.
func (c *Client) GetRoleCredentials(ctx context.Context, accessToken, accountID, roleName string) (Credentials, error) {
	out, err := c.ssoClient.GetRoleCredentials(ctx, &sso.GetRoleCredentialsInput{
		AccessToken: aws.String(accessToken),
		AccountId:   aws.String(accountID),
		RoleName:    aws.String(roleName),
	})
	if err != nil {
		return Credentials{}, err
	}
	rc := out.RoleCredentials
	if rc == nil || rc.AccessKeyId == nil || rc.SecretAccessKey == nil {
		return Credentials{}, fmt.Errorf("role credentials for %s/%s: %w", accountID, roleName, ErrIncompleteCredentials)
	}

	creds := Credentials{
		AccessKeyID:     *rc.AccessKeyId,
		SecretAccessKey: *rc.SecretAccessKey,
	}
	if rc.SessionToken != nil {
		creds.SessionToken = *rc.SessionToken
	}
	if rc.Expiration != 0 {
		creds.Expires = time.UnixMilli(rc.Expiration)
	}
	return creds, nil
}
