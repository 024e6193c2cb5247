package models

// MenuItem represents a sellable item in the catalog.
type MenuItem struct {
	// ID is the unique identifier for the item.
	// Zero means the catalog assigns the next free ID.
	ID int64

	// Name is the display name (e.g., "Fried Rice").
	// Unique within the catalog, compared case-insensitively.
	Name string

	// UnitPrice is the price of one unit. Always positive.
	UnitPrice int64
}

// CartLine represents one item in a cart.
// Adding an item that is already in the cart increments Quantity
// instead of appending a new line.
type CartLine struct {
	// ItemID references the MenuItem this line was created from.
	ItemID int64

	// Name is copied from the menu item at the time it was added.
	Name string

	// UnitPrice is copied from the menu item at the time it was added.
	UnitPrice int64

	// Quantity is the number of units. At least 1.
	Quantity int64
}

// Subtotal returns UnitPrice × Quantity.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * l.Quantity
}
