// Package storefront holds catalog logic that does not touch HTTP or the
// database directly, so it stays testable in isolation.
package storefront

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/floramart/storefront/internal/model"
)

// Limits for the custom bouquet builder.  Kept intentionally loose; they
// exist to stop nonsense payloads, not to model florist inventory.
const (
	MaxStemsPerFlower = 50
	MaxStemsTotal     = 200
)

var (
	ErrEmptyBouquet  = errors.New("bouquet has no stems")
	ErrUnknownFlower = errors.New("unknown flower")
	ErrOutOfStock    = errors.New("flower out of stock")
	ErrTooManyStems  = errors.New("too many stems")
	ErrBadQuantity   = errors.New("quantity must be positive")
	ErrDuplicateStem = errors.New("flower listed twice")
	ErrQuoteTooLarge = errors.New("bouquet total too large")
)

// BouquetSelection is one line of a customer's custom bouquet.
type BouquetSelection struct {
	FlowerID uint64 `json:"flower_id"`
	Quantity uint32 `json:"quantity"`
}

// BouquetLine is a priced line of a quote.
type BouquetLine struct {
	FlowerID  uint64 `json:"flower_id"`
	Name      string `json:"name"`
	Quantity  uint32 `json:"quantity"`
	LineCents uint32 `json:"line_cents"`
}

// BouquetQuote is the priced result of a bouquet selection.  Label is a
// stable human-readable description reused as the order item label, so order
// history survives later catalog edits.
type BouquetQuote struct {
	Lines      []BouquetLine `json:"lines"`
	TotalCents uint32        `json:"total_cents"`
	Label      string        `json:"label"`
}

// QuoteBouquet prices a selection against the given flowers (keyed by id).
// Selections referencing unknown or out-of-stock flowers fail the whole
// quote; partial bouquets are never priced.
func QuoteBouquet(sel []BouquetSelection, flowers map[uint64]model.Flower) (BouquetQuote, error) {
	if len(sel) == 0 {
		return BouquetQuote{}, ErrEmptyBouquet
	}
	seen := make(map[uint64]bool, len(sel))
	var (
		quote BouquetQuote
		total uint64
		stems uint64
		parts []string
	)
	for _, s := range sel {
		if s.Quantity == 0 {
			return BouquetQuote{}, ErrBadQuantity
		}
		if s.Quantity > MaxStemsPerFlower {
			return BouquetQuote{}, fmt.Errorf("%w: at most %d of one flower", ErrTooManyStems, MaxStemsPerFlower)
		}
		if seen[s.FlowerID] {
			return BouquetQuote{}, ErrDuplicateStem
		}
		seen[s.FlowerID] = true

		f, ok := flowers[s.FlowerID]
		if !ok {
			return BouquetQuote{}, fmt.Errorf("%w: id %d", ErrUnknownFlower, s.FlowerID)
		}
		if !f.InStock {
			return BouquetQuote{}, fmt.Errorf("%w: %s", ErrOutOfStock, f.Name)
		}

		line := uint64(f.StemPriceCents) * uint64(s.Quantity)
		total += line
		// Totals are stored as uint32 cents; reject instead of wrapping.
		if total > math.MaxUint32 {
			return BouquetQuote{}, ErrQuoteTooLarge
		}
		stems += uint64(s.Quantity)
		if stems > MaxStemsTotal {
			return BouquetQuote{}, fmt.Errorf("%w: at most %d stems", ErrTooManyStems, MaxStemsTotal)
		}
		quote.Lines = append(quote.Lines, BouquetLine{
			FlowerID:  f.ID,
			Name:      f.Name,
			Quantity:  s.Quantity,
			LineCents: uint32(line),
		})
		parts = append(parts, fmt.Sprintf("%dx %s", s.Quantity, f.Name))
	}
	quote.TotalCents = uint32(total)
	quote.Label = "Custom bouquet (" + strings.Join(parts, ", ") + ")"
	return quote, nil
}
