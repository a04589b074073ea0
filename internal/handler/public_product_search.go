package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
)

// SearchProducts handles GET /v1/search/products?q=term, matching against
// active product names and descriptions.  Short terms are rejected rather
// than scanning the whole catalog.
func (h *PublicHandler) SearchProducts(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if len(term) < 2 {
		return c.JSON(http.StatusBadRequest, authz.Failed("search term must be at least 2 characters"))
	}
	items, err := h.Products.Search(c.Request().Context(), term)
	if err != nil {
		log.Printf("public: search products %q failed: %v", term, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Search failed. Please try again."))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "query": term})
}
