// Package guard makes the per-request allow/deny decision. It composes the
// identity verifier and the membership store into a single check invoked
// identically by the upload and read flows.
package guard

import (
	"context"
	"time"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/famvault/media-gateway/internal/server/auth"
	"github.com/famvault/media-gateway/internal/server/models"
)

// MembershipOracle is the point-in-time source of truth for family
// membership. Satisfied by memberships.Repository.
type MembershipOracle interface {
	IsMember(ctx context.Context, familyID, userID string) (bool, error)
}

type Guard struct {
	verifier auth.Verifier
	members  MembershipOracle
	timeout  time.Duration
}

// New builds a Guard. timeout bounds each call to the verifier and the
// oracle; zero means no extra deadline beyond the request context.
func New(verifier auth.Verifier, members MembershipOracle, timeout time.Duration) *Guard {
	return &Guard{verifier: verifier, members: members, timeout: timeout}
}

// Authorize resolves the bearer token to a principal and confirms current
// membership of familyID, in that strict order. Any verifier failure,
// including a timeout, yields ErrorUnauthenticated; any oracle failure,
// missing family or revoked membership yields ErrorForbidden. Which of the
// latter occurred is never distinguished, so non-members cannot probe for a
// family's existence. There is no caching: every call re-verifies both facts
// so revocation takes effect immediately.
func (g *Guard) Authorize(ctx context.Context, bearerToken, familyID string) (*models.Principal, error) {
	if bearerToken == "" {
		return nil, common.ErrorUnauthenticated
	}

	userID, err := g.verify(ctx, bearerToken)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}

	member, err := g.isMember(ctx, familyID, userID)
	if err != nil || !member {
		return nil, common.ErrorForbidden
	}

	return &models.Principal{UserID: userID}, nil
}

func (g *Guard) verify(ctx context.Context, token string) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()
	return g.verifier.Verify(ctx, token)
}

func (g *Guard) isMember(ctx context.Context, familyID, userID string) (bool, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()
	return g.members.IsMember(ctx, familyID, userID)
}

func (g *Guard) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}
