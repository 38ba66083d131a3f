package splitting

import (
	"fmt"
)

// ErrInvalidItem is returned when a line item violates the quantity or total
// invariants (quantity >= 1, total >= 0).
var ErrInvalidItem = fmt.Errorf("invalid line item")

// LineItem is one purchased entry on a receipt. Items come from the parser or
// from manual entry (tax, tips, fees) and are immutable once added to a table.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"` // Total price in dollars
}

// NewLineItem validates and constructs a LineItem.
func NewLineItem(name string, quantity int, total float64) (LineItem, error) {
	if name == "" {
		return LineItem{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidItem, quantity)
	}
	if total < 0 {
		return LineItem{}, fmt.Errorf("%w: total must not be negative, got %.2f", ErrInvalidItem, total)
	}
	return LineItem{Name: name, Quantity: quantity, Total: total}, nil
}

// UnitPrice is the price of a single unit. It is always derived from the
// total and quantity, never stored, so the two can not drift apart.
func (i LineItem) UnitPrice() float64 {
	return i.Total / float64(i.Quantity)
}

// ItemTable is an ordered, append-only collection of line items. An item's
// index is stable for the life of a session: parsed items come first, manual
// items are appended after them.
type ItemTable []LineItem

// Append returns a new table with the item added at the next index.
func (t ItemTable) Append(item LineItem) ItemTable {
	return append(t, item)
}

// TotalCost sums the totals of every item in the table.
func (t ItemTable) TotalCost() float64 {
	var sum float64
	for _, item := range t {
		sum += item.Total
	}
	return sum
}
