package model

import "time"

// Category groups products for browsing (e.g. "Bouquets", "Indoor Plants").
type Category struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a ready-made catalog item sold at a fixed price.  Prices are
// stored in paise/cents to avoid floating point money.
type Product struct {
	ID          uint64    `json:"id"`
	CategoryID  uint64    `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  uint32    `json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Flower is a single stem type available to the custom bouquet builder.
type Flower struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Color          string    `json:"color"`
	StemPriceCents uint32    `json:"stem_price_cents"`
	InStock        bool      `json:"in_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
