package band

import (
	"errors"
)

// Reason describes why an authentication request failed.
type Reason string

// The supported authentication failure reasons.
const (
	InvalidCredentials Reason = "invalid-credentials"
	EmailInUse         Reason = "email-in-use"
	InvalidEmail       Reason = "invalid-email"
	WeakPassword       Reason = "weak-password"
)

var reasonMessages = map[Reason]string{
	InvalidCredentials: "invalid credentials",
	EmailInUse:         "email already in use",
	InvalidEmail:       "invalid email",
	WeakPassword:       "password too weak",
}

// AuthError describes a failed authentication request. The message is safe to
// be presented to the user.
type AuthError struct {
	Reason Reason
}

// Denied returns a new auth error with the provided reason.
func Denied(reason Reason) *AuthError {
	return &AuthError{
		Reason: reason,
	}
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	// get message
	msg, ok := reasonMessages[e.Reason]
	if !ok {
		msg = "authentication failed"
	}

	return msg
}

// AsAuthError will return the auth error from an error chain.
func AsAuthError(err error) *AuthError {
	var authErr *AuthError
	errors.As(err, &authErr)
	return authErr
}

// IsReason returns whether the provided error is an auth error with the
// specified reason.
func IsReason(err error, reason Reason) bool {
	authErr := AsAuthError(err)
	return authErr != nil && authErr.Reason == reason
}
