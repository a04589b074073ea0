package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
)

const denyOrders = "Only admins can manage orders."

// ListOrders handles GET /v1/admin/orders with an optional ?status= filter.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyOrders); !ok {
		return nil
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, authz.Failed("unknown status"))
	}
	items, err := h.Orders.List(c.Request().Context(), status)
	if err != nil {
		return failWrite(c, "order", "list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/admin/orders/:id, returning the order with its
// items.
func (h *AdminHandler) GetOrder(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyOrders); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	order, items, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("order not found"))
		}
		return failWrite(c, "order", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order, "items": items})
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	if _, ok := h.requireAdmin(c, denyOrders); !ok {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if !model.ValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, authz.Failed("unknown status"))
	}
	if err := h.Orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("order not found"))
		}
		return failWrite(c, "order", c.Param("id"), err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}
