package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeSQS struct {
	receiveInputs    []*sqs.ReceiveMessageInput
	receiveResponses []*sqs.ReceiveMessageOutput
	receiveErr       error

	sendInputs []*sqs.SendMessageBatchInput
	sendFn     func(*sqs.SendMessageBatchInput) (*sqs.SendMessageBatchOutput, error)

	deleteInputs []*sqs.DeleteMessageBatchInput
	deleteFn     func(*sqs.DeleteMessageBatchInput) (*sqs.DeleteMessageBatchOutput, error)

	listResponses []*sqs.ListQueuesOutput
	listCalls     int
}

var _ SQSAPI = (*fakeSQS)(nil)

func (f *fakeSQS) ReceiveMessage(_ context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.receiveInputs = append(f.receiveInputs, params)
	if f.receiveErr != nil {
		return nil, f.receiveErr
	}
	if len(f.receiveResponses) == 0 {
		return &sqs.ReceiveMessageOutput{}, nil
	}
	resp := f.receiveResponses[0]
	f.receiveResponses = f.receiveResponses[1:]
	return resp, nil
}

func (f *fakeSQS) SendMessageBatch(_ context.Context, params *sqs.SendMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error) {
	f.sendInputs = append(f.sendInputs, params)
	if f.sendFn != nil {
		return f.sendFn(params)
	}
	return &sqs.SendMessageBatchOutput{}, nil
}

func (f *fakeSQS) DeleteMessageBatch(_ context.Context, params *sqs.DeleteMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageBatchOutput, error) {
	f.deleteInputs = append(f.deleteInputs, params)
	if f.deleteFn != nil {
		return f.deleteFn(params)
	}
	return &sqs.DeleteMessageBatchOutput{}, nil
}

func (f *fakeSQS) ListQueues(_ context.Context, _ *sqs.ListQueuesInput, _ ...func(*sqs.Options)) (*sqs.ListQueuesOutput, error) {
	if f.listCalls >= len(f.listResponses) {
		return &sqs.ListQueuesOutput{}, nil
	}
	resp := f.listResponses[f.listCalls]
	f.listCalls++
	return resp, nil
}

type fakeSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

var _ STSAPI = (*fakeSTS)(nil)

func (f *fakeSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, f.err
}

type fakeSSO struct {
	accountPages []*sso.ListAccountsOutput
	accountCalls []*sso.ListAccountsInput
	accountsErr  error

	rolePages map[string][]*sso.ListAccountRolesOutput
	roleCalls []*sso.ListAccountRolesInput
	rolesErr  error

	credsOut *sso.GetRoleCredentialsOutput
	credsErr error
	credsIn  []*sso.GetRoleCredentialsInput
}

var _ SSOAPI = (*fakeSSO)(nil)

func (f *fakeSSO) ListAccounts(_ context.Context, params *sso.ListAccountsInput, _ ...func(*sso.Options)) (*sso.ListAccountsOutput, error) {
	f.accountCalls = append(f.accountCalls, params)
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	page := len(f.accountCalls) - 1
	if page >= len(f.accountPages) {
		return &sso.ListAccountsOutput{}, nil
	}
	return f.accountPages[page], nil
}

func (f *fakeSSO) ListAccountRoles(_ context.Context, params *sso.ListAccountRolesInput, _ ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error) {
	f.roleCalls = append(f.roleCalls, params)
	if f.rolesErr != nil {
		return nil, f.rolesErr
	}
	accountID := *params.AccountId
	pages := f.rolePages[accountID]
	served := 0
	for _, call := range f.roleCalls[:len(f.roleCalls)-1] {
		if *call.AccountId == accountID {
			served++
		}
	}
	if served >= len(pages) {
		return &sso.ListAccountRolesOutput{}, nil
	}
	return pages[served], nil
}

func (f *fakeSSO) GetRoleCredentials(_ context.Context, params *sso.GetRoleCredentialsInput, _ ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error) {
	f.credsIn = append(f.credsIn, params)
	if f.credsErr != nil {
		return nil, f.credsErr
	}
	if f.credsOut == nil {
		return nil, fmt.Errorf("no credentials configured")
	}
	return f.credsOut, nil
}

type fakeOIDC struct {
	registerOut   *ssooidc.RegisterClientOutput
	registerErr   error
	registerCalls int

	startOut *ssooidc.StartDeviceAuthorizationOutput
	startErr error

	tokenFn    func(*ssooidc.CreateTokenInput) (*ssooidc.CreateTokenOutput, error)
	tokenCalls []*ssooidc.CreateTokenInput
}

var _ OIDCAPI = (*fakeOIDC)(nil)

func (f *fakeOIDC) RegisterClient(_ context.Context, _ *ssooidc.RegisterClientInput, _ ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error) {
	f.registerCalls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}

func (f *fakeOIDC) StartDeviceAuthorization(_ context.Context, _ *ssooidc.StartDeviceAuthorizationInput, _ ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.startOut, nil
}

func (f *fakeOIDC) CreateToken(_ context.Context, params *ssooidc.CreateTokenInput, _ ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error) {
	f.tokenCalls = append(f.tokenCalls, params)
	if f.tokenFn != nil {
		return f.tokenFn(params)
	}
	return &ssooidc.CreateTokenOutput{}, nil
}
