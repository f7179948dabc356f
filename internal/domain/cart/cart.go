package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

// PriceSource resolves a product's unit price. The catalog implements it.
type PriceSource interface {
	Price(productID string) (decimal.Decimal, bool)
}

// ShippingPolicy charges Fee unless the subtotal is strictly above Threshold
type ShippingPolicy struct {
	Threshold decimal.Decimal
	Fee       decimal.Decimal
}

// DefaultShippingPolicy is free shipping above 500, flat 25 otherwise
var DefaultShippingPolicy = ShippingPolicy{
	Threshold: decimal.NewFromInt(500),
	Fee:       decimal.NewFromInt(25),
}

// ShippingFor applies the policy to a subtotal
func (p ShippingPolicy) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.Threshold) {
		return decimal.Zero
	}
	return p.Fee
}

// Line is one product's quantity entry. Quantity is always >= 1.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Totals is the derived snapshot of a cart
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// FreeShipping reports whether the shipping charge was waived
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// Cart keeps lines in insertion order with at most one line per product.
// It is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines  []Line
	prices PriceSource
	policy ShippingPolicy
}

func New(prices PriceSource, policy ShippingPolicy) *Cart {
	return &Cart{prices: prices, policy: policy}
}

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// AddOrIncrement increments an existing line by qty, or appends a new line
// with quantity max(1, qty). The product id is not checked against the catalog.
func (c *Cart) AddOrIncrement(productID string, qty int) {
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = clamp(addQuantity(c.lines[i].Quantity, qty))
		return
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: clamp(qty)})
}

// SetQuantity replaces a line's quantity, clamping values below 1.
// Missing lines are left alone.
func (c *Cart) SetQuantity(productID string, qty int) {
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = clamp(qty)
	}
}

// IncrementBy applies delta to an existing line, never going below 1
func (c *Cart) IncrementBy(productID string, delta int) {
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = clamp(addQuantity(c.lines[i].Quantity, delta))
	}
}

// Remove deletes the line regardless of its quantity
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID string) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount is the sum of quantities over lines whose product is known
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		if _, ok := c.prices.Price(l.ProductID); ok {
			n = addQuantity(n, l.Quantity)
		}
	}
	return n
}

// LineTotal is unit price times quantity; unknown products contribute zero
func (c *Cart) LineTotal(l Line) decimal.Decimal {
	price, ok := c.prices.Price(l.ProductID)
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(c.LineTotal(l))
	}
	return sum
}

func (c *Cart) Shipping() decimal.Decimal {
	return c.policy.ShippingFor(c.Subtotal())
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping())
}

// Policy returns the shipping policy the cart was built with
func (c *Cart) Policy() ShippingPolicy {
	return c.policy
}

// Totals recomputes every derived value from the current lines
func (c *Cart) Totals() Totals {
	subtotal := c.Subtotal()
	shipping := c.policy.ShippingFor(subtotal)
	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		ItemCount: c.ItemCount(),
	}
}

// addQuantity adds delta to qty, saturating at the int bounds
func addQuantity(qty, delta int) int {
	switch {
	case delta > 0 && qty > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && qty < math.MinInt-delta:
		return math.MinInt
	}
	return qty + delta
}

func clamp(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
