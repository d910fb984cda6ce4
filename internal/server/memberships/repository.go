// Package memberships answers whether a user currently belongs to a family.
// The gateway treats membership as a point-in-time fact and re-reads it on
// every request, so revocation takes effect immediately.
package memberships

import (
	"context"

	"github.com/famvault/media-gateway/internal/server/models"
)

type Repository interface {
	// Get returns the membership row for (familyID, userID), or
	// common.ErrorNotFound if the user is not a current member. An unknown
	// family and a revoked member are indistinguishable to callers.
	Get(ctx context.Context, familyID, userID string) (*models.Membership, error)

	// IsMember reports whether userID is a current member of familyID.
	IsMember(ctx context.Context, familyID, userID string) (bool, error)
}
