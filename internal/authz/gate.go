package authz

import (
	"context"

	"github.com/floramart/storefront/internal/model"
)

// MsgLoginRequired is the deny message for requests with no session.
const MsgLoginRequired = "You must be logged in."

// ProfileStore is the read-only profile lookup the gate needs.  The user
// repository satisfies it; tests substitute stubs.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uint64) (model.Profile, error)
}

// Decision is the gate's answer for one request.  Message is user-facing and
// only set on deny; it never reveals which check failed or what the caller's
// actual role is.
type Decision struct {
	Allowed bool
	Message string
}

// Permit returns an allowing decision.
func Permit() Decision { return Decision{Allowed: true} }

// Deny returns a denying decision carrying a user-facing message.
func Deny(msg string) Decision { return Decision{Message: msg} }

// Gate decides whether a principal may perform a mutation.  The database
// enforces nothing by itself here, so unlike a row-level-policy backend this
// gate is the authority as well as the defense-in-depth layer; route
// middleware performs a cheaper claim-based pre-check in front of it.
type Gate struct {
	profiles ProfileStore
}

// NewGate builds a Gate over the given profile lookup.
func NewGate(p ProfileStore) *Gate {
	if p == nil {
		panic("nil ProfileStore passed to NewGate")
	}
	return &Gate{profiles: p}
}

// RequireAdmin permits only principals whose stored profile carries the
// admin role.  The role is read fresh from the profile row rather than
// trusted from the JWT claim, so a demotion takes effect without waiting for
// token expiry.  A lookup failure and a non-admin role produce the same
// denyMsg so callers cannot probe role state.
func (g *Gate) RequireAdmin(ctx context.Context, p *Principal, denyMsg string) Decision {
	if p == nil {
		return Deny(MsgLoginRequired)
	}
	profile, err := g.profiles.GetProfile(ctx, p.ID)
	if err != nil {
		return Deny(denyMsg)
	}
	if profile.Role != model.RoleAdmin {
		return Deny(denyMsg)
	}
	return Permit()
}

// RequireOwner permits only the principal that owns the target record.
func (g *Gate) RequireOwner(p *Principal, ownerID uint64, denyMsg string) Decision {
	if p == nil {
		return Deny(MsgLoginRequired)
	}
	if p.ID != ownerID {
		return Deny(denyMsg)
	}
	return Permit()
}
