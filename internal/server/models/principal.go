// Package models contains the server-side domain types of the media gateway.
package models

// Principal is the verified identity of the caller. It exists only for the
// duration of a request and is never persisted by the gateway.
type Principal struct {
	UserID string
}
