package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/medstore/internal/domain/cart"
	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/i18n"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart has no orderable items")

// FreeShippingLabel is the shipping label sent when shipping is waived
const FreeShippingLabel = "Free"

// ProductLookup resolves display data for cart lines
type ProductLookup interface {
	Product(id string) (catalog.Product, bool)
}

// OrderLine is one rendered cart line
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CustomerOrder exists only while a submission is being built and sent
type CustomerOrder struct {
	Reference string          `json:"reference"`
	PlacedAt  time.Time       `json:"placed_at"`
	Contact   Contact         `json:"contact"`
	Lines     []OrderLine     `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// BuildOrder renders the cart for submission. Lines whose product is not in
// the catalog are skipped. The contact must already be valid.
func BuildOrder(c *cart.Cart, products ProductLookup, contact Contact, lang i18n.Language, now time.Time) (*CustomerOrder, error) {
	lines := make([]OrderLine, 0, c.Len())
	for _, l := range c.Lines() {
		p, ok := products.Product(l.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, OrderLine{
			ProductID: p.ID,
			Name:      p.Name.In(lang),
			Quantity:  l.Quantity,
			UnitPrice: p.Price,
			LineTotal: c.LineTotal(l),
		})
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := c.Totals()
	return &CustomerOrder{
		Reference: uuid.New().String(),
		PlacedAt:  now,
		Contact:   contact.Normalized(),
		Lines:     lines,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
	}, nil
}

// RenderItems produces the plain text item list, one "- name (xN) - $total" per line
func (o *CustomerOrder) RenderItems() string {
	var b strings.Builder
	for i, l := range o.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (x%d) - %s", l.Name, l.Quantity, FormatMoney(l.LineTotal))
	}
	return b.String()
}

// ShippingLabel is "Free" when shipping is zero, otherwise the fee
func (o *CustomerOrder) ShippingLabel() string {
	return ShippingLabelFor(o.Shipping)
}

// ShippingLabelFor renders a shipping amount the way orders display it
func ShippingLabelFor(shipping decimal.Decimal) string {
	if shipping.IsZero() {
		return FreeShippingLabel
	}
	return "$" + shipping.String()
}

// FormatMoney renders an amount as dollars with two decimals
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Submission is the payload handed to the notification collaborator
type Submission struct {
	OrderRef        string    `json:"order_ref"`
	PlacedAt        time.Time `json:"placed_at"`
	Recipient       string    `json:"to_email"`
	Subject         string    `json:"subject"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	RenderedItems   string    `json:"order_items"`
	TotalFormatted  string    `json:"total_price"`
	ShippingLabel   string    `json:"shipping"`
}

// NewSubmission serializes an order for the given recipient
func NewSubmission(o *CustomerOrder, recipient, subject string) Submission {
	return Submission{
		OrderRef:        o.Reference,
		PlacedAt:        o.PlacedAt,
		Recipient:       recipient,
		Subject:         subject,
		CustomerName:    o.Contact.Name,
		CustomerPhone:   o.Contact.Phone,
		CustomerAddress: o.Contact.Address,
		RenderedItems:   o.RenderItems(),
		TotalFormatted:  FormatMoney(o.Total),
		ShippingLabel:   o.ShippingLabel(),
	}
}
