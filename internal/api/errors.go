package api

import (
	"fmt"
	"strings"
)

// classification of a failed API call
type Kind int

const (
	// credential is invalid or stale; the stored token is evicted
	KindAuth Kind = iota

	// transport-level failure; the stored token is preserved
	KindNetwork

	// request was understood and rejected; surfaced verbatim
	KindValidation

	// backend-side failure
	KindServer
)

// error codes the backend may attach to a structured error body
const (
	codeUnauthorized    = "unauthorized"
	codeTokenExpired    = "token_expired"
	codeInvalidToken    = "invalid_token"
	codeValidationError = "validation_error"
	codeBadRequest      = "bad_request"
)

// failure raised by the API client, carrying a human-readable message
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// reports whether err is an API error classified as an auth failure
func IsAuthError(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindAuth
}

// reports whether err is an API error classified as a network failure
func IsNetworkError(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindNetwork
}

// message fragments that mark a stale credential. the backend does not
// always return 401 for expired tokens, so the status code alone is not
// authoritative. kept loose on purpose and isolated here so the
// heuristic can be replaced without touching call sites.
var staleTokenPatterns = []string{"expired", "signature", "unauthorized"}

// classifies a failed response from status, structured error code, and
// free-text message. the structured code wins when present; the
// substring heuristic is the compatibility shim for backends that only
// return free text.
func classify(status int, code, message string) Kind {
	if status == 401 {
		return KindAuth
	}

	switch code {
	case codeUnauthorized, codeTokenExpired, codeInvalidToken:
		return KindAuth
	case codeValidationError, codeBadRequest:
		return KindValidation
	}

	if messageIndicatesStaleToken(message) {
		return KindAuth
	}

	if status >= 400 && status < 500 {
		return KindValidation
	}

	return KindServer
}

// case-insensitive substring match against the stale-token patterns
func messageIndicatesStaleToken(message string) bool {
	lowered := strings.ToLower(message)

	for _, pattern := range staleTokenPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}

	return false
}

// builds the distinct message for transport-level failures so users can
// tell an unreachable backend from a rejected request
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("cannot connect to the Framegen API - check your network connection and API endpoint (%v)", err),
		cause:   err,
	}
}
