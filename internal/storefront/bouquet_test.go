package storefront_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/storefront"
)

func catalog() map[uint64]model.Flower {
	return map[uint64]model.Flower{
		1: {ID: 1, Name: "Red Rose", StemPriceCents: 250, InStock: true},
		2: {ID: 2, Name: "Tulip", StemPriceCents: 180, InStock: true},
		3: {ID: 3, Name: "Peony", StemPriceCents: 400, InStock: false},
	}
}

func TestQuoteBouquet(t *testing.T) {
	quote, err := storefront.QuoteBouquet([]storefront.BouquetSelection{
		{FlowerID: 1, Quantity: 12},
		{FlowerID: 2, Quantity: 3},
	}, catalog())
	require.NoError(t, err)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, uint32(12*250), quote.Lines[0].LineCents)
	assert.Equal(t, uint32(3*180), quote.Lines[1].LineCents)
	assert.Equal(t, uint32(12*250+3*180), quote.TotalCents)
	assert.Equal(t, "Custom bouquet (12x Red Rose, 3x Tulip)", quote.Label)
}

func TestQuoteBouquetRejections(t *testing.T) {
	tests := []struct {
		name string
		sel  []storefront.BouquetSelection
		want error
	}{
		{"empty selection", nil, storefront.ErrEmptyBouquet},
		{"zero quantity", []storefront.BouquetSelection{{FlowerID: 1, Quantity: 0}}, storefront.ErrBadQuantity},
		{"unknown flower", []storefront.BouquetSelection{{FlowerID: 42, Quantity: 1}}, storefront.ErrUnknownFlower},
		{"out of stock", []storefront.BouquetSelection{{FlowerID: 3, Quantity: 1}}, storefront.ErrOutOfStock},
		{"duplicate flower", []storefront.BouquetSelection{
			{FlowerID: 1, Quantity: 1},
			{FlowerID: 1, Quantity: 2},
		}, storefront.ErrDuplicateStem},
		{"over per-flower limit", []storefront.BouquetSelection{
			{FlowerID: 1, Quantity: storefront.MaxStemsPerFlower + 1},
		}, storefront.ErrTooManyStems},
		{"over total limit", []storefront.BouquetSelection{
			{FlowerID: 1, Quantity: storefront.MaxStemsPerFlower},
			{FlowerID: 2, Quantity: storefront.MaxStemsPerFlower},
			{FlowerID: 4, Quantity: storefront.MaxStemsPerFlower},
			{FlowerID: 5, Quantity: storefront.MaxStemsPerFlower},
			{FlowerID: 6, Quantity: storefront.MaxStemsPerFlower},
		}, storefront.ErrTooManyStems},
		{"total overflows uint32 cents", []storefront.BouquetSelection{
			{FlowerID: 7, Quantity: 2},
		}, storefront.ErrQuoteTooLarge},
	}

	flowers := catalog()
	for id := uint64(4); id <= 6; id++ {
		flowers[id] = model.Flower{ID: id, Name: "Filler", StemPriceCents: 100, InStock: true}
	}
	flowers[7] = model.Flower{ID: 7, Name: "Gold Leaf", StemPriceCents: math.MaxUint32, InStock: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storefront.QuoteBouquet(tt.sel, flowers)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
