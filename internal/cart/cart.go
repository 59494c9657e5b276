package cart

import (
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
)

// Cart is an ordered sequence of product snapshots; insertion order is
// display order. Each add appends one unit, so the same product can appear
// more than once. The zero value is a valid empty cart.
type Cart struct {
	Items []catalog.Product `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []catalog.Product{}}
}

// Add appends a product snapshot to the end of the cart.
func (c *Cart) Add(p catalog.Product) {
	c.Items = append(c.Items, p)
}

// Remove drops every entry whose ID matches productID and reports how many
// were dropped. Removing an absent id or removing from an empty cart leaves
// the cart unchanged.
func (c *Cart) Remove(productID string) int {
	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if item.ID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// Total is the sum of item prices in major units.
func (c *Cart) Total() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price
	}
	return sum
}

// Clear empties the sequence; clearing an already-empty cart is a no-op.
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

func (c *Cart) Len() int {
	return len(c.Items)
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
