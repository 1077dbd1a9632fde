package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/eliauren/sqs-dlq-redrive-webapp/auth"
	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/filter"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	names := s.profiles.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, profilesResponse{Profiles: names})
}

func (s *Server) handleNewSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: uuid.NewString()})
}

func (s *Server) handleStartLogin(w http.ResponseWriter, r *http.Request) {
	var req startLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProfileName == "" {
		writeError(w, http.StatusBadRequest, "profileName is required")
		return
	}

	authz, err := s.flow.Start(r.Context(), req.ProfileName)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startLoginResponse{
		DeviceCode:      authz.DeviceCode,
		VerificationURI: authz.VerificationURI,
		UserCode:        authz.UserCode,
		IntervalSeconds: authz.Interval,
		ExpiresAt:       authz.ExpiresAt,
	})
}

func (s *Server) handlePollLogin(w http.ResponseWriter, r *http.Request) {
	var req pollLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProfileName == "" || req.DeviceCode == "" || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "profileName, deviceCode and sessionId are required")
		return
	}

	result, err := s.flow.Poll(r.Context(), req.ProfileName, req.DeviceCode, req.SessionID)
	if err != nil {
		mapError(w, err)
		return
	}
	if result.Pending {
		writeJSON(w, http.StatusOK, pollLoginResponse{Success: false, Pending: true})
		return
	}
	writeJSON(w, http.StatusOK, pollLoginResponse{Success: true})
}

func (s *Server) handleEnvironments(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		mapError(w, auth.ErrNoActiveSession)
		return
	}

	envs, err := s.discovery.Discover(r.Context(), sess)
	if err != nil {
		mapError(w, err)
		return
	}
	s.environments.Replace(sessionID, envs)

	out := make([]environmentResponse, len(envs))
	for i, env := range envs {
		out[i] = environmentResponse{
			ID:           env.ID,
			Label:        env.Label,
			Regions:      env.Regions,
			SSOAccountID: env.AccountID,
			SSORoleName:  env.RoleName,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// checkRegion verifies the environment exists for the session and permits
// the requested region.
func (s *Server) checkRegion(sessionID, environmentID, region string) error {
	env, ok := s.environments.Get(sessionID, environmentID)
	if !ok {
		return auth.ErrUnknownEnvironment
	}
	if !env.AllowsRegion(region) {
		return ErrRegionNotAllowed
	}
	return nil
}

func (s *Server) handleQueues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	environmentID, region, sessionID := q.Get("environmentId"), q.Get("region"), q.Get("sessionId")
	if environmentID == "" || region == "" || sessionID == "" {
		writeError(w, http.StatusBadRequest, "environmentId, region and sessionId are required")
		return
	}

	if err := s.checkRegion(sessionID, environmentID, region); err != nil {
		mapError(w, err)
		return
	}

	client, err := s.broker.Resolve(r.Context(), environmentID, region, sessionID)
	if err != nil {
		mapError(w, err)
		return
	}

	urls, err := client.ListQueues(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}
	if urls == nil {
		urls = []string{}
	}
	writeJSON(w, http.StatusOK, queuesResponse{QueueURLs: urls})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EnvironmentID == "" || req.Region == "" || req.SourceQueueURL == "" || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "environmentId, region, sourceQueueUrl and sessionId are required")
		return
	}

	if err := s.checkRegion(req.SessionID, req.EnvironmentID, req.Region); err != nil {
		mapError(w, err)
		return
	}

	client, err := s.broker.Resolve(r.Context(), req.EnvironmentID, req.Region, req.SessionID)
	if err != nil {
		mapError(w, err)
		return
	}

	fetched, err := client.FetchMessages(r.Context(), req.SourceQueueURL, aws.FetchOptions{
		MaxMessages:       req.MaxMessages,
		WaitTimeSeconds:   req.WaitTimeSeconds,
		VisibilityTimeout: req.VisibilityTimeout,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	resp := previewResponse{TotalFetched: len(fetched), Messages: []previewMessage{}}

	// The filter only applies when both the path and the expected value
	// are present; otherwise every fetched message passes through.
	if req.AttributePath != "" && req.ExpectedValue != "" {
		for _, res := range filter.Apply(fetched, req.AttributePath, req.ExpectedValue, req.ExcludeMatching) {
			msg := previewMessage{
				MessageID:      res.Message.MessageID,
				ReceiptHandle:  res.Message.ReceiptHandle,
				Body:           res.Message.Body,
				AttributeValue: res.AttributeValue,
			}
			if res.ParseError != nil {
				msg.ParseError = res.ParseError.Error()
			}
			resp.Messages = append(resp.Messages, msg)
		}
	} else {
		for _, msg := range fetched {
			resp.Messages = append(resp.Messages, previewMessage{
				MessageID:     msg.MessageID,
				ReceiptHandle: msg.ReceiptHandle,
				Body:          msg.Body,
			})
		}
	}
	resp.TotalMatched = len(resp.Messages)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRedrive(w http.ResponseWriter, r *http.Request) {
	var req redriveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EnvironmentID == "" || req.Region == "" || req.SourceQueueURL == "" ||
		req.TargetQueueURL == "" || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "environmentId, region, sourceQueueUrl, targetQueueUrl and sessionId are required")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	if err := s.checkRegion(req.SessionID, req.EnvironmentID, req.Region); err != nil {
		mapError(w, err)
		return
	}

	client, err := s.broker.Resolve(r.Context(), req.EnvironmentID, req.Region, req.SessionID)
	if err != nil {
		mapError(w, err)
		return
	}

	messages := make([]aws.RedriveMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = aws.RedriveMessage{
			MessageID:     m.MessageID,
			ReceiptHandle: m.ReceiptHandle,
			Body:          m.Body,
		}
	}

	summary, err := client.Redrive(r.Context(), req.SourceQueueURL, req.TargetQueueURL, messages, req.DeleteAfterSend)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redriveResponse{
		Sent:         summary.Sent,
		SendFailed:   summary.SendFailed,
		Deleted:      summary.Deleted,
		DeleteFailed: summary.DeleteFailed,
	})
}

func (s *Server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	environmentID, region, sessionID := q.Get("environmentId"), q.Get("region"), q.Get("sessionId")
	if environmentID == "" || region == "" || sessionID == "" {
		writeError(w, http.StatusBadRequest, "environmentId, region and sessionId are required")
		return
	}

	if err := s.checkRegion(sessionID, environmentID, region); err != nil {
		mapError(w, err)
		return
	}

	identity, err := s.broker.Identity(r.Context(), environmentID, region, sessionID)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{
		Account: identity.Account,
		ARN:     identity.ARN,
		UserID:  identity.UserID,
	})
}
