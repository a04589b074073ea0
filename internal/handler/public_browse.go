package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
	"github.com/floramart/storefront/internal/storefront"
	"github.com/floramart/storefront/internal/utils"
)

// PublicHandler serves the unauthenticated storefront: category and product
// browsing, the flower list for the bouquet builder, bouquet quotes and the
// delivery pincode check.  Read-only except for nothing: no public endpoint
// writes.
type PublicHandler struct {
	Categories *repository.CategoryRepo
	Products   *repository.ProductRepo
	Flowers    *repository.FlowerRepo
	Settings   SettingStore
}

func NewPublicHandler(cat *repository.CategoryRepo, prod *repository.ProductRepo, fl *repository.FlowerRepo, set SettingStore) *PublicHandler {
	if cat == nil || prod == nil || fl == nil || set == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Categories: cat, Products: prod, Flowers: fl, Settings: set}
}

// ListCategories handles GET /v1/categories.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	items, err := h.Categories.List(c.Request().Context())
	if err != nil {
		log.Printf("public: list categories failed: %v", err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load categories."))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListProducts handles GET /v1/products with an optional ?category= filter.
// Only active products are visible here.
func (h *PublicHandler) ListProducts(c echo.Context) error {
	var categoryID uint64
	if v := c.QueryParam("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, authz.Failed("invalid category"))
		}
		categoryID = id
	}
	items, err := h.Products.List(c.Request().Context(), categoryID, true)
	if err != nil {
		log.Printf("public: list products failed: %v", err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load products."))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetProduct handles GET /v1/products/:slug.
func (h *PublicHandler) GetProduct(c echo.Context) error {
	slug := c.Param("slug")
	p, err := h.Products.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("product not found"))
		}
		log.Printf("public: get product %q failed: %v", slug, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load product."))
	}
	return c.JSON(http.StatusOK, p)
}

// ListFlowers handles GET /v1/flowers for the bouquet builder.  Pass
// ?all=true to include out-of-stock stems (shown greyed out).
func (h *PublicHandler) ListFlowers(c echo.Context) error {
	inStockOnly := !strings.EqualFold(c.QueryParam("all"), "true")
	items, err := h.Flowers.List(c.Request().Context(), inStockOnly)
	if err != nil {
		log.Printf("public: list flowers failed: %v", err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load flowers."))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// QuoteBouquet handles POST /v1/bouquet/quote.  It prices a custom bouquet
// without creating anything, so guests can build before signing in.
func (h *PublicHandler) QuoteBouquet(c echo.Context) error {
	var req struct {
		Items []storefront.BouquetSelection `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	ids := make([]uint64, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.FlowerID)
	}
	flowers, err := h.Flowers.GetByIDs(c.Request().Context(), ids)
	if err != nil {
		log.Printf("public: load flowers for quote failed: %v", err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not price your bouquet."))
	}
	quote, err := storefront.QuoteBouquet(req.Items, flowers)
	if err != nil {
		// Pricing errors are user-actionable (unknown flower, out of stock).
		return c.JSON(http.StatusBadRequest, authz.Failed(err.Error()))
	}
	return c.JSON(http.StatusOK, quote)
}

// CheckDelivery handles GET /v1/delivery/check?pincode=NNNNNN.  The
// serviceable area is the stored comma-separated pincode list; a missing
// setting means the area is unconfigured and nothing is deliverable.
func (h *PublicHandler) CheckDelivery(c echo.Context) error {
	pincode := strings.TrimSpace(c.QueryParam("pincode"))
	if pincode == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("pincode is required"))
	}
	deliverable, err := h.pincodeServed(c, pincode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not check delivery availability."))
	}
	return c.JSON(http.StatusOK, echo.Map{"pincode": pincode, "deliverable": deliverable})
}

// pincodeServed reports whether the pincode appears in the stored delivery
// list.  ErrNotFound (key never configured) is distinguished from an empty
// value only in the log; both mean "not deliverable" to the caller.
func (h *PublicHandler) pincodeServed(c echo.Context, pincode string) (bool, error) {
	s, err := h.Settings.Get(c.Request().Context(), model.SettingDeliveryPincodes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("public: %s is not configured", model.SettingDeliveryPincodes)
			return false, nil
		}
		log.Printf("public: load %s failed: %v", model.SettingDeliveryPincodes, err)
		return false, err
	}
	for _, p := range utils.SplitTrimmed(s.Value) {
		if p == pincode {
			return true, nil
		}
	}
	return false, nil
}
