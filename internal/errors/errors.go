// Package errors holds the sentinel error values shared across the session
// components, so log output and error checks name the same conditions.
package errors

import "errors"

var (
	// ErrSessionExpired marks a session that can no longer be renewed.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken marks a refresh attempt with nothing to send.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrRefreshTokenExpired marks a refresh token past its stored expiry.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrBodyNotReplayable marks a request whose body cannot be re-sent
	// after a token refresh.
	ErrBodyNotReplayable = errors.New("request body cannot be replayed")
)
