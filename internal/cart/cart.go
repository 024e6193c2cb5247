// Package cart holds the live cart of a point-of-sale session.
package cart

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/kasir/internal/calculator"
	"github.com/mmynk/kasir/internal/models"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Cart is a mutable list of cart lines. It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts qty units of item into the cart. If the item is already there,
// its quantity is incremented; otherwise a new line is appended.
func (c *Cart) Add(item models.MenuItem, qty int64) error {
	if qty < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  qty,
	})
	return nil
}

// Remove drops the line for itemID. It reports whether a line was removed.
func (c *Cart) Remove(itemID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, func(l models.CartLine) bool {
		return l.ItemID == itemID
	})
	return len(c.lines) != n
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total returns the cart total. An empty cart yields calculator.ErrEmptyCart.
func (c *Cart) Total() (int64, error) {
	return calculator.ComputeTotal(c.Lines())
}
