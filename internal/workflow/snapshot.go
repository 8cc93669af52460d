package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

// NewRecord snapshots the cart into a fresh record in the lifecycle's initial
// status. Products found in catalog supply the item snapshot; a line item
// missing from catalog keeps the display fields it carried in the cart.
func NewRecord(
	lifecycle Lifecycle,
	cart *domain.Cart,
	catalog map[string]domain.CatalogItem,
	submitter domain.Submitter,
	now time.Time,
) (*domain.Record, error) {
	if cart.IsEmpty() {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cart",
			Message: "add at least one product or custom coil before submitting",
		})
	}

	lineItems := cart.LineItems()
	items := make([]domain.RecordItem, 0, len(lineItems))
	for _, li := range lineItems {
		product, ok := catalog[li.ProductID]
		if !ok {
			product = domain.CatalogItem{
				ID:          li.ProductID,
				SKU:         li.SKU,
				Name:        li.Name,
				Description: li.Description,
				Images:      li.Images,
				Category:    li.Category,
			}
		}
		product.Images = append([]string(nil), product.Images...)
		items = append(items, domain.RecordItem{Product: product, Quantity: li.Quantity})
	}

	now = now.UTC()
	id := uuid.New()
	return &domain.Record{
		ID:          id.String(),
		HumanID:     HumanID(lifecycle.Prefix, id),
		Kind:        lifecycle.Kind,
		User:        submitter,
		Status:      lifecycle.Initial,
		Items:       items,
		CustomItems: cart.CustomCoils(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HumanID derives the short reference quoted to customers, e.g. ENQ-1A2B3C4D.
func HumanID(prefix string, id uuid.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return prefix + "-" + hex[:8]
}
