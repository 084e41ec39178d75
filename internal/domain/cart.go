package domain

import "time"

// MaxLineQuantity is the per-line quantity ceiling. Operations that would push
// a single line past this bound are rejected without touching cart state; the
// cart-wide unit total is not capped.
const MaxLineQuantity = 20

// CartLine is one cart entry. A line exists only while its quantity is
// positive; quantities reduced to zero delete the line. UnitPrice is resolved
// from the catalog on every load, never trusted from the client or the store.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// LineTotal returns quantity times unit price for this line.
func (l CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is the aggregate root for one browser session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// TotalQuantity returns the sum of all line quantities. Derived on demand,
// never stored.
func (c *Cart) TotalQuantity() int {
	var total int
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of quantity times unit price over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// FindLineIndex returns the index of the line for the given product, or -1.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the current quantity for a product, 0 when no line exists.
func (c *Cart) Quantity(productID string) int {
	if i := c.FindLineIndex(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Snapshot returns a deep copy of the cart. Handlers and the checkout flow
// read snapshots so nothing outside the service can mutate engine state.
func (c *Cart) Snapshot() *Cart {
	cp := *c
	cp.Lines = make([]CartLine, len(c.Lines))
	copy(cp.Lines, c.Lines)
	return &cp
}
