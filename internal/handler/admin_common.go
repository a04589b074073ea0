package handler // admin handlers for catalog, orders and site settings

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/repository"
)

// AdminHandler bundles the stores admins mutate.  Every mutation follows the
// same shape: resolve principal, ask the gate, and only on permit issue the
// single write.  The route group already requires the admin role claim; the
// gate re-checks against the profile row so a stale token cannot mutate.
type AdminHandler struct {
	Gate       *authz.Gate
	Categories *repository.CategoryRepo
	Products   *repository.ProductRepo
	Flowers    *repository.FlowerRepo
	Orders     *repository.OrderRepo
	Settings   SettingStore
}

// requireAdmin runs the gate for the current request.  On deny it writes the
// outcome response and returns false; the caller must not touch storage.
func (h *AdminHandler) requireAdmin(c echo.Context, denyMsg string) (*authz.Principal, bool) {
	p, _ := authz.PrincipalFrom(c)
	d := h.Gate.RequireAdmin(c.Request().Context(), p, denyMsg)
	if d.Allowed {
		return p, true
	}
	status := http.StatusForbidden
	if p == nil {
		status = http.StatusUnauthorized
	}
	_ = c.JSON(status, authz.Failed(d.Message))
	return nil, false
}

// failWrite logs a storage error with resource context and writes the
// generic failure outcome.  Raw database errors never reach the client.
func failWrite(c echo.Context, resource, key string, err error) error {
	log.Printf("admin: %s write failed (key=%s): %v", resource, key, err)
	return c.JSON(http.StatusInternalServerError, authz.Failed("Something went wrong. Please try again."))
}
