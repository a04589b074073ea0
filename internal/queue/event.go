// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderPlacedEvent is published when a customer order is created.  It
// carries enough detail for downstream consumers (notifications, analytics,
// the florist's fulfilment log) without querying the primary database.
type OrderPlacedEvent struct {
	OrderID    uint64   `json:"order_id"`
	UserID     uint64   `json:"user_id"`
	Email      string   `json:"email"`
	Items      []string `json:"items"`
	TotalCents uint32   `json:"total_cents"`
	Pincode    string   `json:"pincode"`
	PlacedAt   string   `json:"placed_at"`
}
