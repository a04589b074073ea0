package router

import (
	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/middleware"
	"github.com/floramart/storefront/internal/model"
)

// RegisterCustomer registers the self-service order endpoints under /v1.
// Admins are allowed through too so a florist can place test orders with
// their own account; ownership checks inside the handlers still apply.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	)
	g.POST("/orders", h.PlaceOrder)
	g.GET("/my-orders", h.ListMyOrders)
	g.GET("/orders/:id", h.GetMyOrder)
	g.DELETE("/orders/:id", h.CancelMyOrder)
}
