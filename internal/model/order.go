package model

import "time"

// Order status values.  Customers may cancel only while an order is still
// pending; every later transition is an admin operation.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order item kinds.  A "product" line references a catalog product; a
// "bouquet" line is a custom bouquet priced at order time from its stems.
const (
	ItemProduct = "product"
	ItemBouquet = "bouquet"
)

// Order aggregates the items a customer checked out in one go.
type Order struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Status     string    `json:"status"`
	TotalCents uint32    `json:"total_cents"`
	Pincode    string    `json:"pincode"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrderItem is one line of an order.  ProductID is nil for custom bouquet
// lines; Label always carries a human-readable description so order history
// stays meaningful even if the catalog changes later.
type OrderItem struct {
	ID             uint64  `json:"id"`
	OrderID        uint64  `json:"order_id"`
	Kind           string  `json:"kind"`
	ProductID      *uint64 `json:"product_id,omitempty"`
	Label          string  `json:"label"`
	Quantity       uint32  `json:"quantity"`
	UnitPriceCents uint32  `json:"unit_price_cents"`
}

// ValidOrderStatus reports whether s is one of the known status values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
