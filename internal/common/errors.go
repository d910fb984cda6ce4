// Package common defines shared sentinel errors used across the media
// gateway. Every failure surfaced to a client is classified as exactly one
// of these kinds; callers should use errors.Is to match them and wrap with
// %w to attach detail.
package common

import "errors"

var (
	// Request-level errors (malformed payload, policy violations).
	ErrorInvalidRequest = errors.New("invalid request")

	// Auth errors.
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")

	// Routing errors.
	ErrorNotFound = errors.New("not found")

	// Anything unexpected in a collaborator (signer, network).
	ErrorInternal = errors.New("internal error")

	// Token lifecycle errors (classified into ErrorUnauthenticated
	// by the authorization guard).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
