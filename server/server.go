// Package server exposes the redrive operations as a JSON API with an
// embedded browser UI. Handlers parse and validate requests, map domain
// errors to status codes, and delegate everything else to the auth and
// queue components.
package server

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eliauren/sqs-dlq-redrive-webapp/auth"
	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
)

//go:embed static
var staticFS embed.FS

// LoginFlow starts and polls device authorizations.
type LoginFlow interface {
	Start(ctx context.Context, profileName string) (aws.DeviceAuthorization, error)
	Poll(ctx context.Context, profileName, deviceCode, sessionID string) (auth.PollResult, error)
}

// EnvironmentDiscoverer lists the environments a session can reach.
type EnvironmentDiscoverer interface {
	Discover(ctx context.Context, sess session.SSOSession) ([]session.Environment, error)
}

// CredentialBroker resolves scoped queue clients for a session.
type CredentialBroker interface {
	Resolve(ctx context.Context, environmentID, region, sessionID string) (*aws.QueueClient, error)
	Identity(ctx context.Context, environmentID, region, sessionID string) (aws.Identity, error)
}

// ProfileNames lists the configured profile names for the UI.
type ProfileNames interface {
	Names() []string
}

// Server holds the dependencies needed by the HTTP handlers.
type Server struct {
	profiles     ProfileNames
	flow         LoginFlow
	discovery    EnvironmentDiscoverer
	broker       CredentialBroker
	sessions     *session.Store
	environments *session.EnvironmentRegistry
	logger       *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to a JSON logger on
// stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server over the given collaborators.
func New(profiles ProfileNames, flow LoginFlow, discovery EnvironmentDiscoverer, broker CredentialBroker,
	sessions *session.Store, environments *session.EnvironmentRegistry, opts ...Option) *Server {
	s := &Server{
		profiles:     profiles,
		flow:         flow,
		discovery:    discovery,
		broker:       broker,
		sessions:     sessions,
		environments: environments,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return s
}

// Router returns a chi.Router with all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Post("/session", s.handleNewSession)
		r.Post("/login/start", s.handleStartLogin)
		r.Post("/login/poll", s.handlePollLogin)
		r.Get("/environments", s.handleEnvironments)
		r.Get("/queues", s.handleQueues)
		r.Post("/messages/preview", s.handlePreview)
		r.Post("/messages/redrive", s.handleRedrive)
		r.Get("/identity", s.handleIdentity)
	})

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
