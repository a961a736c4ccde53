package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingToken indicates the Authorization header was absent.
	ErrMissingToken = errors.New("missing authorization header")

	// ErrUnknownToken indicates the token did not resolve to any user.
	ErrUnknownToken = errors.New("unknown access token")

	// ErrBackendUnavailable indicates the credential store could not be
	// queried. Externally this is indistinguishable from an unknown token.
	ErrBackendUnavailable = errors.New("credential store unavailable")
)
