package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/queue"
	"github.com/floramart/storefront/internal/repository"
	queue_publisher "github.com/floramart/storefront/internal/service"
	"github.com/floramart/storefront/internal/storefront"
	"github.com/floramart/storefront/internal/utils"
)

// CustomerHandler serves the self-service order endpoints.  Reads and writes
// on an order are owner-only: a foreign order id behaves exactly like a
// missing one so callers cannot probe other people's order numbers.
type CustomerHandler struct {
	Gate     *authz.Gate
	Orders   *repository.OrderRepo
	Products *repository.ProductRepo
	Flowers  *repository.FlowerRepo
	Settings SettingStore
}

func NewCustomerHandler(g *authz.Gate, o *repository.OrderRepo, p *repository.ProductRepo, f *repository.FlowerRepo, s SettingStore) *CustomerHandler {
	if g == nil || o == nil || p == nil || f == nil || s == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Gate: g, Orders: o, Products: p, Flowers: f, Settings: s}
}

type orderLineReq struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

type placeOrderReq struct {
	Items    []orderLineReq                  `json:"items"`
	Bouquets [][]storefront.BouquetSelection `json:"bouquets"`
	Pincode  string                          `json:"pincode"`
	Note     string                          `json:"note"`
}

// PlaceOrder handles POST /v1/orders.  Prices are always taken from the
// catalog at order time; client-supplied prices are never trusted.  The
// order header and all item rows are one transaction in the repository.
func (h *CustomerHandler) PlaceOrder(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if len(req.Items) == 0 && len(req.Bouquets) == 0 {
		return c.JSON(http.StatusBadRequest, authz.Failed("order is empty"))
	}
	if req.Pincode == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("pincode is required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var (
		items []model.OrderItem
		total uint64
	)

	for _, line := range req.Items {
		if line.Quantity == 0 || line.Quantity > 100 {
			return c.JSON(http.StatusBadRequest, authz.Failed("item quantity must be between 1 and 100"))
		}
		prod, err := h.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, authz.Failed(fmt.Sprintf("product %d does not exist", line.ProductID)))
			}
			log.Printf("orders: load product %d failed: %v", line.ProductID, err)
			return c.JSON(http.StatusInternalServerError, authz.Failed("Could not place your order. Please try again."))
		}
		if !prod.IsActive {
			return c.JSON(http.StatusBadRequest, authz.Failed(fmt.Sprintf("%q is no longer available", prod.Name)))
		}
		pid := prod.ID
		items = append(items, model.OrderItem{
			Kind:           model.ItemProduct,
			ProductID:      &pid,
			Label:          prod.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: prod.PriceCents,
		})
		total += uint64(prod.PriceCents) * uint64(line.Quantity)
	}

	for _, sel := range req.Bouquets {
		ids := make([]uint64, 0, len(sel))
		for _, s := range sel {
			ids = append(ids, s.FlowerID)
		}
		flowers, err := h.Flowers.GetByIDs(ctx, ids)
		if err != nil {
			log.Printf("orders: load flowers failed: %v", err)
			return c.JSON(http.StatusInternalServerError, authz.Failed("Could not place your order. Please try again."))
		}
		quote, err := storefront.QuoteBouquet(sel, flowers)
		if err != nil {
			return c.JSON(http.StatusBadRequest, authz.Failed(err.Error()))
		}
		items = append(items, model.OrderItem{
			Kind:           model.ItemBouquet,
			Label:          quote.Label,
			Quantity:       1,
			UnitPriceCents: quote.TotalCents,
		})
		total += uint64(quote.TotalCents)
	}

	// total_cents is a uint32 column; reject instead of wrapping.
	if total > math.MaxUint32 {
		return c.JSON(http.StatusBadRequest, authz.Failed("Order total is too large."))
	}

	if served, err := h.pincodeServed(ctx, req.Pincode); err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not place your order. Please try again."))
	} else if !served {
		return c.JSON(http.StatusBadRequest, authz.Failed("Sorry, we do not deliver to this pincode yet."))
	}

	order := &model.Order{
		UserID:     p.ID,
		Status:     model.OrderPending,
		TotalCents: uint32(total),
		Pincode:    req.Pincode,
		Note:       req.Note,
	}
	if err := h.Orders.Create(ctx, order, items); err != nil {
		log.Printf("orders: create failed for user %d: %v", p.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not place your order. Please try again."))
	}

	// Fire-and-forget: a broker outage must not fail the order.
	evt := queue.OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     p.ID,
		Email:      p.Email,
		TotalCents: order.TotalCents,
		Pincode:    order.Pincode,
		PlacedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, it := range items {
		evt.Items = append(evt.Items, fmt.Sprintf("%dx %s", it.Quantity, it.Label))
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishOrderPlaced(pubCtx, evt)
	}()

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "order": order, "items": items})
}

func (h *CustomerHandler) pincodeServed(ctx context.Context, pincode string) (bool, error) {
	s, err := h.Settings.Get(ctx, model.SettingDeliveryPincodes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		log.Printf("orders: load %s failed: %v", model.SettingDeliveryPincodes, err)
		return false, err
	}
	for _, p := range utils.SplitTrimmed(s.Value) {
		if p == pincode {
			return true, nil
		}
	}
	return false, nil
}

// ListMyOrders handles GET /v1/my-orders.
func (h *CustomerHandler) ListMyOrders(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
	}
	items, err := h.Orders.ListByUser(c.Request().Context(), p.ID)
	if err != nil {
		log.Printf("orders: list for user %d failed: %v", p.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load your orders."))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMyOrder handles GET /v1/orders/:id for the order's owner.
func (h *CustomerHandler) GetMyOrder(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
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
		log.Printf("orders: load %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load your order."))
	}
	// Someone else's order looks exactly like a missing one.
	if d := h.Gate.RequireOwner(p, order.UserID, "order not found"); !d.Allowed {
		return c.JSON(http.StatusNotFound, authz.Failed(d.Message))
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order, "items": items})
}

// CancelMyOrder handles DELETE /v1/orders/:id: owner-only, pending-only.
func (h *CustomerHandler) CancelMyOrder(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid id"))
	}
	if err := h.Orders.CancelOwned(c.Request().Context(), id, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, authz.Failed("order not found"))
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, authz.Failed("Only pending orders can be cancelled."))
		}
		log.Printf("orders: cancel %d failed for user %d: %v", id, p.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not cancel your order."))
	}
	return c.JSON(http.StatusOK, authz.OK())
}
