package model

import "time"

// CartItem is one line in a cart: a product selection with the unit
// price captured at add time.
type CartItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
}

// Cart holds a user's current selections. One cart per user, created
// lazily on first access. At most one line per (product, size, color).
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindItem returns the line matching the (product, size, color) tuple.
func (c *Cart) FindItem(productID int64, size, color string) (*CartItem, bool) {
	for i := range c.Items {
		item := &c.Items[i]
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return item, true
		}
	}
	return nil, false
}

// Subtotal sums price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
