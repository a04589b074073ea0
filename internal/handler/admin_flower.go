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
)

type flowerReq struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	StemPriceCents uint32 `json:"stem_price_cents"`
	InStock        *bool  `json:"in_stock"`
}

const denyFlowers = "Only admins can manage flowers."

// CreateFlower handles POST /v1/admin/flowers.
func (h *AdminHandler) CreateFlower(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyFlowers); !ok {
		return nil
	}
	var req flowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("name is required"))
	}
	if req.StemPriceCents == 0 {
		return c.JSON(http.StatusBadRequest, authz.Failed("stem_price_cents must be positive"))
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	f := &model.Flower{Name: name, Color: strings.TrimSpace(req.Color), StemPriceCents: req.StemPriceCents, InStock: inStock}
	if err := h.Flowers.Create(c.Request().Context(), f); err != nil {
		return failWrite(c, "flower", name, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// UpdateFlower handles PUT/PATCH /v1/admin/flowers/:id.
func (h *AdminHandler) UpdateFlower(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyFlowers); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	var req flowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("name is required"))
	}
	if req.StemPriceCents == 0 {
		return c.JSON(http.StatusBadRequest, authz.Failed("stem_price_cents must be positive"))
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	f := &model.Flower{ID: id, Name: name, Color: strings.TrimSpace(req.Color), StemPriceCents: req.StemPriceCents, InStock: inStock}
	if err := h.Flowers.Update(c.Request().Context(), f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("flower not found"))
		}
		return failWrite(c, "flower", c.Param("id"), err)
	}
	updated, err := h.Flowers.GetByID(c.Request().Context(), id)
	if err != nil {
		return failWrite(c, "flower", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteFlower handles DELETE /v1/admin/flowers/:id.
func (h *AdminHandler) DeleteFlower(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyFlowers); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	if err := h.Flowers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("flower not found"))
		}
		return failWrite(c, "flower", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}
