package cart

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

var propertyIDs = []string{"101", "102", "103", "ghost"}

// applyOps drives the cart through a random operation sequence.
// Each op is encoded as kind, product index and amount.
func applyOps(c *Cart, kinds, products, amounts []int) {
	n := len(kinds)
	if len(products) < n {
		n = len(products)
	}
	if len(amounts) < n {
		n = len(amounts)
	}
	for i := 0; i < n; i++ {
		id := propertyIDs[products[i]%len(propertyIDs)]
		switch kinds[i] % 4 {
		case 0:
			c.AddOrIncrement(id, amounts[i])
		case 1:
			c.SetQuantity(id, amounts[i])
		case 2:
			c.IncrementBy(id, amounts[i])
		case 3:
			c.Remove(id)
		}
	}
}

func opGens() []gopter.Gen {
	return []gopter.Gen{
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(-5, 10)),
	}
}

// Property: no duplicate product ids and every quantity is at least one
func TestCart_LineInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lines are unique and positive", prop.ForAll(
		func(kinds, products, amounts []int) bool {
			c := newTestCart()
			applyOps(c, kinds, products, amounts)

			seen := make(map[string]bool)
			for _, l := range c.Lines() {
				if seen[l.ProductID] || l.Quantity < 1 {
					return false
				}
				seen[l.ProductID] = true
			}
			return true
		},
		opGens()...,
	))

	properties.TestingRun(t)
}

// Property: subtotal = Σ price×qty, total = subtotal + shipping, shipping = 0 iff subtotal > 500
func TestCart_DerivedValueInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	prices := testPrices()

	properties.Property("totals match their definitions", prop.ForAll(
		func(kinds, products, amounts []int) bool {
			c := New(prices, DefaultShippingPolicy)
			applyOps(c, kinds, products, amounts)

			expected := decimal.Zero
			for _, l := range c.Lines() {
				if p, ok := prices[l.ProductID]; ok {
					expected = expected.Add(p.Mul(decimal.NewFromInt(int64(l.Quantity))))
				}
			}

			totals := c.Totals()
			if !totals.Subtotal.Equal(expected) {
				return false
			}
			if !totals.Total.Equal(totals.Subtotal.Add(totals.Shipping)) {
				return false
			}
			above := totals.Subtotal.GreaterThan(decimal.NewFromInt(500))
			return totals.Shipping.IsZero() == above
		},
		opGens()...,
	))

	properties.TestingRun(t)
}
