// Package auth verifies bearer tokens and resolves them to user identities.
package auth

import "context"

// Verifier turns an opaque bearer token into a stable user id, or fails.
// Implementations are chosen once at process startup; there is no
// configuration value under which an unverified token is accepted.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
