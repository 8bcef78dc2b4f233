package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Product mirrors the catalog's product document. The catalog owns it; the
// storefront never mutates one.
type Product struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
}

// EffectivePrice is the price after the discount, unrounded and never negative.
func (p Product) EffectivePrice() decimal.Decimal {
	discount := decimal.NewFromFloat(p.DiscountPercentage)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(hundred) {
		discount = hundred
	}

	price := p.Price.Mul(hundred.Sub(discount)).Div(hundred)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

func (p Product) Discounted() bool {
	return p.DiscountPercentage > 0
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Account struct {
	ID           uuid.UUID `gorm:"primaryKey"          json:"id"`
	Name         string    `gorm:"not null"            json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"            json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}

func (a Account) User() User {
	return User{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
	}
}
