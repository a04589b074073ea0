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

type categoryReq struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

const denyCategories = "Only admins can manage categories."

// CreateCategory handles POST /v1/admin/categories.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyCategories); !ok {
		return nil
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("name is required"))
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	cat := &model.Category{Name: name, Slug: slug}
	if err := h.Categories.Create(c.Request().Context(), cat); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, authz.Failed("A category with this name already exists."))
		}
		return failWrite(c, "category", name, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles PUT/PATCH /v1/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyCategories); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("name is required"))
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	if err := h.Categories.Update(c.Request().Context(), id, name, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("category not found"))
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, authz.Failed("A category with this name already exists."))
		}
		return failWrite(c, "category", c.Param("id"), err)
	}
	updated, err := h.Categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return failWrite(c, "category", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyCategories); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("category not found"))
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, authz.Failed("Category still has products; move or delete them first."))
		}
		return failWrite(c, "category", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}
