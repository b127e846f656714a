package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"lumina-store/models"
)

// ErrItemNotFound is returned when a cart operation names an id not in the cart.
var ErrItemNotFound = errors.New("cart item not found")

// Cart is a list of items keyed by product id. The zero value is an empty cart.
type Cart struct {
	items []models.CartItem
}

// Add puts one unit of product into the cart. An id already present has its
// quantity incremented instead of being duplicated.
func (c *Cart) Add(product models.Product) {
	if i := c.index(product.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: 1})
}

// UpdateQuantity sets the quantity of an item. Quantities below 1 are
// ignored; only Remove deletes an entry. It reports whether the cart changed.
func (c *Cart) UpdateQuantity(id, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items[i].Quantity = quantity
	return true
}

// Remove deletes the entry with the given id.
func (c *Cart) Remove(id int) error {
	i := c.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Item returns the entry with the given id.
func (c *Cart) Item(id int) (models.CartItem, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return models.CartItem{}, false
}

// Items returns a copy of the cart entries in insertion order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price × quantity.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) index(id int) int {
	for i, it := range c.items {
		if it.Product.ID == id {
			return i
		}
	}
	return -1
}
