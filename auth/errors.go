package auth

import "errors"

var (
	// ErrUnknownProfile reports a login attempt against a profile name the
	// config file does not define (or no longer defines).
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrNoActiveSession reports that no unexpired SSO session exists for
	// the session id. The caller must reconnect.
	ErrNoActiveSession = errors.New("no active session")

	// ErrUnknownEnvironment reports an environment id that was never
	// discovered for the session.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrMissingAccountInfo reports an environment descriptor without the
	// account id or role name needed for credential exchange.
	ErrMissingAccountInfo = errors.New("environment is missing account id or role name")
)
