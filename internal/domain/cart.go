package domain

import (
	"encoding/json"
	"strings"

	apperrors "coilworks/internal/errors"
)

type CartLineItem struct {
	ProductID   string   `json:"productId"`
	Quantity    int      `json:"quantity"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// CustomCoil is a build-to-order coil configuration. Dimension fields are kept
// as entered on the configurator form.
type CustomCoil struct {
	CoilType                 string `json:"coilType"`
	Height                   string `json:"height"`
	Length                   string `json:"length"`
	Rows                     string `json:"rows"`
	FPI                      string `json:"fpi"`
	EndplateType             string `json:"endplateType"`
	CircuitType              string `json:"circuitType"`
	NumberOfCircuits         string `json:"numberOfCircuits"`
	HeaderSize               string `json:"headerSize"`
	TubeType                 string `json:"tubeType"`
	FinType                  string `json:"finType"`
	DistributorHoles         string `json:"distributorHoles"`
	DistributorHolesDontKnow bool   `json:"distributorHolesDontKnow"`
	InletConnection          string `json:"inletConnection"`
	InletConnectionDontKnow  bool   `json:"inletConnectionDontKnow"`
	Quantity                 int    `json:"quantity"`
}

// Key identifies a custom coil inside a cart. Two configurations sharing a
// coil type collide and the later one replaces the earlier.
func (c CustomCoil) Key() string {
	return c.CoilType
}

func (i CartLineItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return apperrors.NewValidationError("productId is required", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must not be empty",
		})
	}
	return validateQuantity(i.Quantity)
}

func (c CustomCoil) Validate() error {
	if strings.TrimSpace(c.Key()) == "" {
		return apperrors.NewValidationError("coilType is required", apperrors.ValidationDetail{
			Field:   "coilType",
			Message: "coilType must not be empty",
		})
	}
	return validateQuantity(c.Quantity)
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	return nil
}

// CartState is the serialized form of a cart, used for local persistence and
// for the cart save call.
type CartState struct {
	Items       []CartLineItem `json:"items"`
	CustomCoils []CustomCoil   `json:"customCoils"`
}

// Cart holds line items keyed by product id and custom coils keyed by
// CustomCoil.Key, in insertion order. The zero value is not usable; use NewCart.
type Cart struct {
	items     map[string]CartLineItem
	itemOrder []string
	coils     map[string]CustomCoil
	coilOrder []string
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[string]CartLineItem),
		coils: make(map[string]CustomCoil),
	}
}

// CartFromState rebuilds a cart, merging duplicate keys (last entry wins) and
// dropping entries without a key or with a quantity below one.
func CartFromState(state CartState) *Cart {
	cart := NewCart()
	for _, item := range state.Items {
		_ = cart.UpsertLineItem(item)
	}
	for _, coil := range state.CustomCoils {
		_ = cart.UpsertCustomCoil(coil)
	}
	return cart
}

// UpsertLineItem inserts the item or replaces the quantity and display fields
// of the existing item with the same product id.
func (c *Cart) UpsertLineItem(item CartLineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	item.Images = append([]string(nil), item.Images...)
	if _, ok := c.items[item.ProductID]; !ok {
		c.itemOrder = append(c.itemOrder, item.ProductID)
	}
	c.items[item.ProductID] = item
	return nil
}

func (c *Cart) UpsertCustomCoil(coil CustomCoil) error {
	if err := coil.Validate(); err != nil {
		return err
	}

	key := coil.Key()
	if _, ok := c.coils[key]; !ok {
		c.coilOrder = append(c.coilOrder, key)
	}
	c.coils[key] = coil
	return nil
}

// DecrementLineItem lowers the quantity by one and removes the item when it
// reaches zero. It reports whether the cart changed.
func (c *Cart) DecrementLineItem(productID string) bool {
	item, ok := c.items[productID]
	if !ok {
		return false
	}
	item.Quantity--
	if item.Quantity <= 0 {
		c.RemoveLineItem(productID)
		return true
	}
	c.items[productID] = item
	return true
}

func (c *Cart) RemoveLineItem(productID string) bool {
	if _, ok := c.items[productID]; !ok {
		return false
	}
	delete(c.items, productID)
	c.itemOrder = removeKey(c.itemOrder, productID)
	return true
}

func (c *Cart) RemoveCustomCoil(key string) bool {
	if _, ok := c.coils[key]; !ok {
		return false
	}
	delete(c.coils, key)
	c.coilOrder = removeKey(c.coilOrder, key)
	return true
}

// Replace swaps the whole contents for state, normalized as in CartFromState.
func (c *Cart) Replace(state CartState) {
	*c = *CartFromState(state)
}

func (c *Cart) Clear() {
	c.items = make(map[string]CartLineItem)
	c.itemOrder = nil
	c.coils = make(map[string]CustomCoil)
	c.coilOrder = nil
}

func (c *Cart) LineItem(productID string) (CartLineItem, bool) {
	if c == nil {
		return CartLineItem{}, false
	}
	item, ok := c.items[productID]
	return item, ok
}

func (c *Cart) CustomCoil(key string) (CustomCoil, bool) {
	if c == nil {
		return CustomCoil{}, false
	}
	coil, ok := c.coils[key]
	return coil, ok
}

func (c *Cart) LineItems() []CartLineItem {
	if c == nil {
		return []CartLineItem{}
	}
	out := make([]CartLineItem, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		item := c.items[id]
		item.Images = append([]string(nil), item.Images...)
		out = append(out, item)
	}
	return out
}

func (c *Cart) CustomCoils() []CustomCoil {
	if c == nil {
		return []CustomCoil{}
	}
	out := make([]CustomCoil, 0, len(c.coilOrder))
	for _, key := range c.coilOrder {
		out = append(out, c.coils[key])
	}
	return out
}

// TotalQuantity sums line item and custom coil quantities. A nil cart counts
// as empty.
func (c *Cart) TotalQuantity() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	for _, coil := range c.coils {
		total += coil.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return c == nil || (len(c.items) == 0 && len(c.coils) == 0)
}

func (c *Cart) State() CartState {
	return CartState{
		Items:       c.LineItems(),
		CustomCoils: c.CustomCoils(),
	}
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return NewCart()
	}
	return CartFromState(c.State())
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.State())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var state CartState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	c.Replace(state)
	return nil
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}
	return keys
}
