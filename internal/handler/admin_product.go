package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
	"github.com/floramart/storefront/internal/utils"
)

type productReq struct {
	CategoryID  uint64 `json:"category_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

const denyProducts = "Only admins can manage products."

func (r *productReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.CategoryID == 0 {
		return "category_id is required"
	}
	if r.PriceCents == 0 {
		return "price_cents must be positive"
	}
	return ""
}

func (r *productReq) toModel() model.Product {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		slug = utils.Slugify(r.Name)
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.Product{
		CategoryID:  r.CategoryID,
		Name:        strings.TrimSpace(r.Name),
		Slug:        slug,
		Description: strings.TrimSpace(r.Description),
		PriceCents:  r.PriceCents,
		ImageURL:    strings.TrimSpace(r.ImageURL),
		IsActive:    active,
	}
}

// CreateProduct handles POST /v1/admin/products.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyProducts); !ok {
		return nil
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, authz.Failed(msg))
	}

	// Reject unknown categories up front for a clearer message than the FK
	// error.
	if _, err := h.Categories.GetByID(c.Request().Context(), req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, authz.Failed("category does not exist"))
		}
		return failWrite(c, "product", req.Name, err)
	}

	p := req.toModel()
	if err := h.Products.Create(c.Request().Context(), &p); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, authz.Failed("A product with this slug already exists."))
		}
		return failWrite(c, "product", p.Name, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT/PATCH /v1/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyProducts); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, authz.Failed(msg))
	}

	p := req.toModel()
	p.ID = id
	if err := h.Products.Update(c.Request().Context(), &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("product not found"))
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, authz.Failed("A product with this slug already exists."))
		}
		return failWrite(c, "product", c.Param("id"), err)
	}
	updated, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		return failWrite(c, "product", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /v1/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyProducts); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("product not found"))
		}
		return failWrite(c, "product", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}

// ListAllProducts handles GET /v1/admin/products: unlike the public catalog
// it includes inactive products.
func (h *AdminHandler) ListAllProducts(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyProducts); !ok {
		return nil
	}
	var categoryID uint64
	if v := c.QueryParam("category"); v != "" {
		categoryID, _ = strconv.ParseUint(v, 10, 64)
	}
	items, err := h.Products.List(c.Request().Context(), categoryID, false)
	if err != nil {
		return failWrite(c, "product", "list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
