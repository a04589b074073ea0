package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/repository"
)

// DenySettings is the deny message for the settings executor.  Settings are
// security-sensitive (payment handle, delivery area), so denials and backend
// failures both stay generic.
const DenySettings = "Only admins can update settings."

type settingReq struct {
	Value string `json:"value"`
}

// UpsertSetting handles PUT /v1/admin/settings/:key.  The write is keyed on
// the natural setting key, so replaying the same payload is a no-op.
func (h *AdminHandler) UpsertSetting(c echo.Context) error {
	if _, ok := h.requireAdmin(c, DenySettings); !ok {
		return nil
	}
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("setting key is required"))
	}
	var req settingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if err := h.Settings.Upsert(c.Request().Context(), key, req.Value); err != nil {
		return failWrite(c, "setting", key, err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}

// ListSettings handles GET /v1/admin/settings.
func (h *AdminHandler) ListSettings(c echo.Context) error {
	if _, ok := h.requireAdmin(c, DenySettings); !ok {
		return nil
	}
	items, err := h.Settings.List(c.Request().Context())
	if err != nil {
		return failWrite(c, "setting", "list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteSetting handles DELETE /v1/admin/settings/:key.
func (h *AdminHandler) DeleteSetting(c echo.Context) error {
	if _, ok := h.requireAdmin(c, DenySettings); !ok {
		return nil
	}
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("setting key is required"))
	}
	if err := h.Settings.Delete(c.Request().Context(), key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("setting not found"))
		}
		return failWrite(c, "setting", key, err)
	}
	return c.JSON(http.StatusOK, authz.OK())
}
