package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

// FormatPrice renders an amount for display, rounded to cents.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

type PriceTag struct {
	Price    string `json:"price"`
	Original string `json:"original,omitempty"`
}

// Tag is what the product details screen shows: the effective price and,
// when discounted, the original one.
func Tag(p models.Product) PriceTag {
	tag := PriceTag{Price: FormatPrice(p.EffectivePrice())}
	if p.Discounted() {
		tag.Original = FormatPrice(p.Price)
	}
	return tag
}
