package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/medstore/internal/checkout"
	"github.com/example/medstore/internal/domain/cart"
	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/domain/wishlist"
	"github.com/example/medstore/internal/i18n"
	"github.com/example/medstore/internal/query"
	"github.com/shopspring/decimal"
)

// ErrCheckoutInProgress rejects cart and contact edits while an order is being sent
var ErrCheckoutInProgress = errors.New("checkout in progress")

// Deps are the shared collaborators every session is built from
type Deps struct {
	Catalog  *catalog.Catalog
	Notifier checkout.Notifier
	Policy   cart.ShippingPolicy
	Checkout checkout.Options
}

// Session owns one visitor's state containers. Every operation runs to
// completion under the session lock and returns a fresh snapshot.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	catalog  *catalog.Catalog
	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	lang     i18n.Language
	query    query.Config
	flow     *checkout.Flow
}

func NewSession(id string, deps Deps, lang i18n.Language) *Session {
	if !lang.Valid() {
		lang = i18n.Default
	}
	policy := deps.Policy
	if policy.Threshold.IsZero() && policy.Fee.IsZero() {
		policy = cart.DefaultShippingPolicy
	}
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		catalog:   deps.Catalog,
		cart:      cart.New(deps.Catalog, policy),
		wishlist:  wishlist.New(),
		lang:      lang,
		query:     query.DefaultConfig(),
		flow:      checkout.NewFlow(deps.Notifier, deps.Catalog, deps.Checkout),
	}
}

// ============================================
// Views
// ============================================

// ProductView is a product rendered in the active language
type ProductView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	InWishlist  bool            `json:"in_wishlist"`
	InCart      int             `json:"in_cart"`
}

type CategoryView struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Icon  catalog.IconKind `json:"icon"`
	Image string           `json:"image"`
}

type CartLineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Lines         []CartLineView  `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	FreeShipping  bool            `json:"free_shipping"`
	ShippingLabel string          `json:"shipping_label"`
}

type WishlistView struct {
	Items []ProductView `json:"items"`
	Count int           `json:"count"`
}

type ProductListView struct {
	Query    query.Config  `json:"query"`
	Products []ProductView `json:"products"`
	Count    int           `json:"count"`
}

type CheckoutView struct {
	Status checkout.Status `json:"status"`
	Cart   CartView        `json:"cart"`
}

// ============================================
// Localization
// ============================================

func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Locale returns the string bundle for the active language
func (s *Session) Locale() i18n.LocaleBundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i18n.Bundle(s.lang)
}

func (s *Session) SetLanguage(lang i18n.Language) (i18n.LocaleBundle, error) {
	if !lang.Valid() {
		return i18n.LocaleBundle{}, i18n.ErrUnsupportedLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	return i18n.Bundle(lang), nil
}

// ToggleLanguage switches between Arabic and English
func (s *Session) ToggleLanguage() i18n.LocaleBundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = s.lang.Toggle()
	return i18n.Bundle(s.lang)
}

// ============================================
// Catalog
// ============================================

func (s *Session) Categories() []CategoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats := s.catalog.Categories()
	out := make([]CategoryView, len(cats))
	for i, c := range cats {
		out[i] = CategoryView{ID: c.ID, Name: c.Name.In(s.lang), Icon: c.Icon, Image: c.Image}
	}
	return out
}

// CategoryTags are the listing filter choices, "all" first
func (s *Session) CategoryTags() []string {
	return query.Categories(s.catalog)
}

// Products stores cfg as the session's listing state and runs the query
func (s *Session) Products(cfg query.Config) ProductListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = cfg
	return s.productListLocked()
}

// CurrentProducts reruns the stored listing state, e.g. after a language change
func (s *Session) CurrentProducts() ProductListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productListLocked()
}

func (s *Session) QueryConfig() query.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) Product(id string) (ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.Product(id)
	if !ok {
		return ProductView{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
	}
	return s.productViewLocked(p), nil
}

// ============================================
// Cart
// ============================================

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

// AddToCart adds qty of a catalog product, incrementing an existing line
func (s *Session) AddToCart(productID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartView{}, err
	}
	if !s.catalog.Contains(productID) {
		return CartView{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	s.cart.AddOrIncrement(productID, qty)
	return s.cartViewLocked(), nil
}

func (s *Session) SetQuantity(productID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartView{}, err
	}
	s.cart.SetQuantity(productID, qty)
	return s.cartViewLocked(), nil
}

// IncrementQuantity applies the +/- buttons; the line never drops below one
func (s *Session) IncrementQuantity(productID string, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartView{}, err
	}
	s.cart.IncrementBy(productID, delta)
	return s.cartViewLocked(), nil
}

func (s *Session) RemoveFromCart(productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartView{}, err
	}
	s.cart.Remove(productID)
	return s.cartViewLocked(), nil
}

// ============================================
// Wishlist
// ============================================

func (s *Session) Wishlist() WishlistView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistViewLocked()
}

func (s *Session) AddToWishlist(productID string) (WishlistView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Contains(productID) {
		return WishlistView{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	s.wishlist.Add(productID)
	return s.wishlistViewLocked(), nil
}

// ToggleWishlist flips membership and reports whether the product is now listed
func (s *Session) ToggleWishlist(productID string) (bool, WishlistView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wishlist.Contains(productID) && !s.catalog.Contains(productID) {
		return false, WishlistView{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	listed := s.wishlist.Toggle(productID)
	return listed, s.wishlistViewLocked(), nil
}

func (s *Session) RemoveFromWishlist(productID string) WishlistView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist.Remove(productID)
	return s.wishlistViewLocked()
}

func (s *Session) ClearWishlist() WishlistView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist.Clear()
	return s.wishlistViewLocked()
}

// ============================================
// Checkout
// ============================================

func (s *Session) CheckoutStatus() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkoutViewLocked()
}

// SetContact stores the checkout form. It is validated only on submit.
func (s *Session) SetContact(c checkout.Contact) (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CheckoutView{}, err
	}
	s.flow.SetContact(c)
	return s.checkoutViewLocked(), nil
}

// Checkout submits the cart. The session lock is released while the
// notifier is awaited; edits made in that window fail with ErrCheckoutInProgress.
func (s *Session) Checkout(ctx context.Context) (*checkout.CustomerOrder, CheckoutView, error) {
	order, err := s.flow.Submit(ctx, &s.mu, s.cart)
	if errors.Is(err, checkout.ErrSubmissionInProgress) {
		err = fmt.Errorf("%w: %w", ErrCheckoutInProgress, err)
	}
	return order, s.CheckoutStatus(), err
}

// ============================================
// Helpers (caller holds s.mu)
// ============================================

func (s *Session) editableLocked() error {
	if s.flow.Submitting() {
		return ErrCheckoutInProgress
	}
	return nil
}

func (s *Session) productViewLocked(p catalog.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name.In(s.lang),
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Image:       p.Image,
		Description: p.Description.In(s.lang),
		InWishlist:  s.wishlist.Contains(p.ID),
	}
	if l, ok := s.cart.Line(p.ID); ok {
		v.InCart = l.Quantity
	}
	return v
}

func (s *Session) productListLocked() ProductListView {
	products := query.Run(s.catalog, s.query, s.lang)
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = s.productViewLocked(p)
	}
	return ProductListView{Query: s.query, Products: views, Count: len(views)}
}

// cartViewLocked skips lines whose product is no longer in the catalog
func (s *Session) cartViewLocked() CartView {
	totals := s.cart.Totals()
	lines := make([]CartLineView, 0, s.cart.Len())
	for _, l := range s.cart.Lines() {
		p, ok := s.catalog.Product(l.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, CartLineView{
			ProductID: p.ID,
			Name:      p.Name.In(s.lang),
			Image:     p.Image,
			UnitPrice: p.Price,
			Quantity:  l.Quantity,
			LineTotal: s.cart.LineTotal(l),
		})
	}

	return CartView{
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
		ItemCount:     totals.ItemCount,
		FreeShipping:  totals.FreeShipping(),
		ShippingLabel: checkout.ShippingLabelFor(totals.Shipping),
	}
}

func (s *Session) wishlistViewLocked() WishlistView {
	items := make([]ProductView, 0, s.wishlist.Len())
	for _, id := range s.wishlist.Items() {
		p, ok := s.catalog.Product(id)
		if !ok {
			continue
		}
		items = append(items, s.productViewLocked(p))
	}
	return WishlistView{Items: items, Count: len(items)}
}

func (s *Session) checkoutViewLocked() CheckoutView {
	return CheckoutView{Status: s.flow.Status(), Cart: s.cartViewLocked()}
}
