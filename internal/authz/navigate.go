package authz

import "github.com/floramart/storefront/internal/model"

// Client-side locations returned in Outcome.Next after auth flows.
const (
	PathHome       = "/"
	PathRegistered = "/login?registered=true"
	PathAdminHome  = "/admin"
	PathAccount    = "/account"
)

// LandingPath returns where a freshly signed-in principal should land.  The
// caller must pass the role read from the profile row, not a default: the
// sign-in handler computes this only after its role lookup has returned.
func LandingPath(role string) string {
	if role == model.RoleAdmin {
		return PathAdminHome
	}
	return PathAccount
}
