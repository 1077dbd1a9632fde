package aws

import "time"

// RegisteredClient is an OIDC client registered with the identity provider.
// Registration is scoped to one identity-provider region and reused for the
// process lifetime.
type RegisteredClient struct {
	ClientID     string
	ClientSecret string
}

// DeviceAuthorization is a pending device-authorization grant. It is held
// by the caller between starting the flow and polling for its completion.
type DeviceAuthorization struct {
	DeviceCode      string
	VerificationURI string
	UserCode        string
	Interval        int32
	ExpiresAt       time.Time
}

// Token is a completed device-grant token exchange.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Account is an AWS account reachable with an SSO access token.
type Account struct {
	ID   string
	Name string
}

// Credentials are short-lived role credentials minted from an SSO token.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expires         time.Time
}

// Message is a message received from a queue.
type Message struct {
	MessageID     string
	ReceiptHandle string
	Body          string
	Attributes    map[string]string
}

// Identity is the caller identity behind a set of role credentials.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}
