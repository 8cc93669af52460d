package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CatalogItem struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// LineItem builds a cart line item carrying the product's display fields.
func (p CatalogItem) LineItem(quantity int) CartLineItem {
	return CartLineItem{
		ProductID:   p.ID,
		Quantity:    quantity,
		Name:        p.Name,
		Description: p.Description,
		Images:      append([]string(nil), p.Images...),
		SKU:         p.SKU,
		Category:    p.Category,
	}
}
