package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication and no
// storefront logic.  Currently only the health probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Credential endpoints
// (register/login/reset) sit behind the rate limiter; session maintenance
// endpoints do not, since a valid refresh token already throttles abuse.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register, limiter)
	g.POST("/login", a.Login, limiter)
	g.POST("/reset-password", a.RequestPasswordReset, limiter)
	g.POST("/refresh", a.Refresh)
	// Logout works with either a refresh token in the body or a bearer
	// token; the JWT middleware is not applied so expired sessions can
	// still sign out with their refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me/profile", a.UpdateMyProfile)
}

// RegisterPublic registers the unauthenticated storefront: catalog
// browsing, product search, bouquet quoting and the delivery check.  The
// cache middleware is applied to the GET endpoints only; quoting posts a
// payload and must never be cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/categories", p.ListCategories, cache)
	e.GET("/v1/products", p.ListProducts, cache)
	e.GET("/v1/products/:slug", p.GetProduct, cache)
	e.GET("/v1/flowers", p.ListFlowers, cache)
	e.GET("/v1/search/products", p.SearchProducts, cache)
	e.GET("/v1/delivery/check", p.CheckDelivery)
	e.POST("/v1/bouquet/quote", p.QuoteBouquet)
}
