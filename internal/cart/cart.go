package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrMissingID is returned when a line item arrives without a product id.
// The id is the uniqueness key, so storing such an item would corrupt the
// cart; callers get an error instead.
var ErrMissingID = errors.New("line item id required")

// LineItem is one product-quantity pairing. Name, price and image are copied
// from the product at the moment of adding; later catalog changes do not
// reprice items already in the cart.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered collection of line items, at most one per product id,
// in the order distinct products were first added.
type Cart struct {
	items []LineItem
}

// Restore rebuilds a cart from a persisted snapshot. Entries without an id or
// with a quantity below 1 are dropped; duplicate ids are merged into the
// first occurrence. A well-formed snapshot round-trips unchanged.
func Restore(items []LineItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if i, ok := c.index(it.ID); ok {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// AddItem appends a new line item or increments the quantity of an existing
// one. A missing quantity counts as a single "add one more". For an existing
// id the stored name, price and image are kept.
func (c *Cart) AddItem(item LineItem) error {
	if item.ID == "" {
		return ErrMissingID
	}

	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	if i, ok := c.index(item.ID); ok {
		c.items[i].Quantity += qty
		return nil
	}

	item.Quantity = qty
	c.items = append(c.items, item)
	return nil
}

// RemoveItem deletes the entry with the given id. Removing an absent id is a
// no-op: the effect the caller wanted is already true.
func (c *Cart) RemoveItem(id string) {
	if i, ok := c.index(id); ok {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// SetQuantity sets an entry's quantity to exactly n. n < 1 removes the entry.
// Unknown ids are a no-op.
func (c *Cart) SetQuantity(id string, n int) {
	if n < 1 {
		c.RemoveItem(id)
		return
	}
	if i, ok := c.index(id); ok {
		c.items[i].Quantity = n
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the sum of all quantities, not the number of distinct products.
func (c *Cart) ItemCount() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Subtotal sums price*quantity over all entries using the stored add-time
// prices.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (c *Cart) Contains(id string) bool {
	_, ok := c.index(id)
	return ok
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) index(id string) (int, bool) {
	for i, it := range c.items {
		if it.ID == id {
			return i, true
		}
	}
	return 0, false
}
