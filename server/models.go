package server

import "time"

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type profilesResponse struct {
	Profiles []string `json:"profiles"`
}

type startLoginRequest struct {
	ProfileName string `json:"profileName"`
}

type startLoginResponse struct {
	DeviceCode      string    `json:"deviceCode"`
	VerificationURI string    `json:"verificationUri"`
	UserCode        string    `json:"userCode"`
	IntervalSeconds int32     `json:"intervalSeconds"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type pollLoginRequest struct {
	ProfileName string `json:"profileName"`
	DeviceCode  string `json:"deviceCode"`
	SessionID   string `json:"sessionId"`
}

type pollLoginResponse struct {
	Success bool `json:"success"`
	Pending bool `json:"pending,omitempty"`
}

type environmentResponse struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Regions      []string `json:"regions"`
	SSOAccountID string   `json:"ssoAccountId,omitempty"`
	SSORoleName  string   `json:"ssoRoleName,omitempty"`
}

type queuesResponse struct {
	QueueURLs []string `json:"queueUrls"`
}

type previewRequest struct {
	EnvironmentID     string `json:"environmentId"`
	Region            string `json:"region"`
	SourceQueueURL    string `json:"sourceQueueUrl"`
	SessionID         string `json:"sessionId"`
	MaxMessages       int    `json:"maxMessages"`
	WaitTimeSeconds   int32  `json:"waitTimeSeconds"`
	VisibilityTimeout int32  `json:"visibilityTimeout"`
	AttributePath     string `json:"attributePath"`
	ExpectedValue     string `json:"expectedValue"`
	ExcludeMatching   bool   `json:"excludeMatching"`
}

type previewMessage struct {
	MessageID      string `json:"messageId"`
	ReceiptHandle  string `json:"receiptHandle"`
	Body           string `json:"body"`
	AttributeValue any    `json:"attributeValue,omitempty"`
	ParseError     string `json:"parseError,omitempty"`
}

type previewResponse struct {
	TotalFetched int              `json:"totalFetched"`
	TotalMatched int              `json:"totalMatched"`
	Messages     []previewMessage `json:"messages"`
}

type redriveInputMessage struct {
	MessageID     string `json:"messageId"`
	ReceiptHandle string `json:"receiptHandle"`
	Body          string `json:"body"`
}

type redriveRequest struct {
	EnvironmentID   string                `json:"environmentId"`
	Region          string                `json:"region"`
	SourceQueueURL  string                `json:"sourceQueueUrl"`
	TargetQueueURL  string                `json:"targetQueueUrl"`
	SessionID       string                `json:"sessionId"`
	Messages        []redriveInputMessage `json:"messages"`
	DeleteAfterSend bool                  `json:"deleteAfterSend"`
}

type redriveResponse struct {
	Sent         int `json:"sent"`
	SendFailed   int `json:"sendFailed"`
	Deleted      int `json:"deleted"`
	DeleteFailed int `json:"deleteFailed"`
}

type identityResponse struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"userId"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
