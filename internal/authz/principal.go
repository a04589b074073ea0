// Package authz implements the role-gated mutation pattern shared by every
// state-changing endpoint: resolve the principal from the request, ask the
// gate for a permit/deny decision, and only then touch storage.  Denials are
// normal outcomes, never errors.
package authz

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Principal is the authenticated identity attached to a request by the JWT
// middleware.  A nil *Principal means "no session", which is an expected
// state for public traffic, not a failure.
type Principal struct {
	ID    uint64
	Email string
}

// PrincipalFrom reads the principal stored in the echo context by the JWT
// middleware.  It returns (nil, false) when the request is unauthenticated.
// The user_id value is normalized here because JWT numeric claims decode as
// float64 while tests and middleware may set native integer types.
func PrincipalFrom(c echo.Context) (*Principal, bool) {
	v := c.Get("user_id")
	if v == nil {
		return nil, false
	}
	var id uint64
	switch t := v.(type) {
	case uint64:
		id = t
	case int:
		id = uint64(t)
	case int64:
		id = uint64(t)
	case float64:
		id = uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return nil, false
		}
		id = n
	default:
		return nil, false
	}
	if id == 0 {
		return nil, false
	}
	email, _ := c.Get("email").(string)
	return &Principal{ID: id, Email: email}, true
}
