package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestKeywordFilter_Match(t *testing.T) {
	t.Parallel()

	f := NewKeywordFilter([]string{" Mascara ", "", "serum"})
	assert.True(t, f.Enabled())

	tests := []struct {
		name    string
		product models.Product
		want    bool
	}{
		{name: "title", product: models.Product{Title: "Volume MASCARA"}, want: true},
		{name: "description", product: models.Product{Description: "a light serum"}, want: true},
		{name: "category", product: models.Product{Category: "serums"}, want: true},
		{name: "brand", product: models.Product{Brand: "MascaraCo"}, want: true},
		{name: "no match", product: models.Product{Title: "Laptop", Category: "electronics", Brand: "Apple"}, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Match(tt.product))
		})
	}
}

func TestKeywordFilter_Disabled(t *testing.T) {
	f := NewKeywordFilter(nil)
	assert.False(t, f.Enabled())
	assert.True(t, f.Match(models.Product{Title: "anything"}))
}

func TestMatchLocal_IgnoresDescription(t *testing.T) {
	products := []models.Product{
		{ID: 1, Title: "Red Lipstick"},
		{ID: 2, Brand: "Lip Co"},
		{ID: 3, Category: "lips"},
		{ID: 4, Title: "Chair", Description: "great for lips"},
	}

	got := MatchLocal(products, "LIP")
	ids := make([]int, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Len(t, MatchLocal(products, "  "), 4)
}

func TestTag(t *testing.T) {
	discounted := models.Product{Price: decimal.RequireFromString("19.99"), DiscountPercentage: 12.5}
	tag := Tag(discounted)
	assert.Equal(t, "$17.49", tag.Price)
	assert.Equal(t, "$19.99", tag.Original)

	plain := models.Product{Price: decimal.NewFromInt(5)}
	assert.Equal(t, PriceTag{Price: "$5.00"}, Tag(plain))
}
