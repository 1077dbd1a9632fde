package auth

import (
	"context"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/sso/types"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"

	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/config"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
)

// stubSSO serves single-page account/role listings and one credentials
// response. Pagination behavior is covered by the aws package tests.
type stubSSO struct {
	accounts map[string][]ssotypes.AccountInfo // keyed by access token
	roles    map[string][]ssotypes.RoleInfo    // keyed by account id
	rolesErr error

	credsOut *sso.GetRoleCredentialsOutput
	credsErr error
	credsIn  []*sso.GetRoleCredentialsInput
}

func (s *stubSSO) ListAccounts(_ context.Context, params *sso.ListAccountsInput, _ ...func(*sso.Options)) (*sso.ListAccountsOutput, error) {
	return &sso.ListAccountsOutput{AccountList: s.accounts[*params.AccessToken]}, nil
}

func (s *stubSSO) ListAccountRoles(_ context.Context, params *sso.ListAccountRolesInput, _ ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error) {
	if s.rolesErr != nil {
		return nil, s.rolesErr
	}
	return &sso.ListAccountRolesOutput{RoleList: s.roles[*params.AccountId]}, nil
}

func (s *stubSSO) GetRoleCredentials(_ context.Context, params *sso.GetRoleCredentialsInput, _ ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error) {
	s.credsIn = append(s.credsIn, params)
	if s.credsErr != nil {
		return nil, s.credsErr
	}
	return s.credsOut, nil
}

// stubOIDC registers a fixed client and delegates token creation.
type stubOIDC struct {
	startOut *ssooidc.StartDeviceAuthorizationOutput
	startErr error
	tokenFn  func(*ssooidc.CreateTokenInput) (*ssooidc.CreateTokenOutput, error)
}

func (s *stubOIDC) RegisterClient(context.Context, *ssooidc.RegisterClientInput, ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error) {
	return &ssooidc.RegisterClientOutput{
		ClientId:     sdkaws.String("cid"),
		ClientSecret: sdkaws.String("secret"),
	}, nil
}

func (s *stubOIDC) StartDeviceAuthorization(context.Context, *ssooidc.StartDeviceAuthorizationInput, ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s.startOut, nil
}

func (s *stubOIDC) CreateToken(_ context.Context, params *ssooidc.CreateTokenInput, _ ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error) {
	if s.tokenFn != nil {
		return s.tokenFn(params)
	}
	return &ssooidc.CreateTokenOutput{}, nil
}

func stubRegistry(ssoAPI *stubSSO, oidcAPI *stubOIDC) *aws.ClientRegistry {
	return aws.NewClientRegistry(func(_ context.Context, region string) (*aws.Client, error) {
		return aws.NewClientFromAPIs(ssoAPI, oidcAPI, region), nil
	})
}

func testProfiles(t *testing.T) *config.ProfileSet {
	t.Helper()
	return config.NewProfileSet([]config.Profile{{
		Name: "dev",
		Session: config.SSOSession{
			Name:     "corp",
			StartURL: "https://corp.awsapps.com/start",
			Region:   "eu-west-1",
		},
		AccountID: "111111111111",
		RoleName:  "Developer",
	}})
}

func activeSession() session.SSOSession {
	return session.SSOSession{
		SessionName: "corp",
		Region:      "eu-west-1",
		AccessToken: "tok",
	}
}
