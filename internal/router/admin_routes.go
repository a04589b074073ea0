package router

import (
	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/middleware"
	"github.com/floramart/storefront/internal/model"
)

// RegisterAdmin registers the admin dashboard endpoints under
// /v1/admin.  All routes require a valid JWT with the admin role claim;
// every mutating handler additionally consults the authorization gate,
// which re-reads the profile row.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Categories ----
	g.POST("/categories", h.CreateCategory)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.PATCH("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)

	// ---- Products ----
	g.GET("/products", h.ListAllProducts) // includes inactive, unlike /v1/products
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.PATCH("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	// ---- Flowers ----
	g.POST("/flowers", h.CreateFlower)
	g.PUT("/flowers/:id", h.UpdateFlower)
	g.PATCH("/flowers/:id", h.UpdateFlower)
	g.DELETE("/flowers/:id", h.DeleteFlower)

	// ---- Orders ----
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	// ---- Site settings ----
	g.GET("/settings", h.ListSettings)
	g.PUT("/settings/:key", h.UpsertSetting)
	g.DELETE("/settings/:key", h.DeleteSetting)
}
