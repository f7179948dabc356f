package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/example/medstore/internal/checkout"
	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/i18n"
	"github.com/example/medstore/internal/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContact = checkout.Contact{Name: "Layla", Phone: "0123456789", Address: "Alexandria"}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *countingNotifier) Notify(ctx context.Context, s checkout.Submission) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

func newTestSession(t *testing.T, notifier checkout.Notifier) *Session {
	t.Helper()
	c, err := catalog.NewStaticProvider().LoadCatalog(context.Background())
	require.NoError(t, err)
	return NewSession("sess-1", Deps{Catalog: c, Notifier: notifier}, i18n.English)
}

// ============================================
// Cart Tests
// ============================================

func TestSession_AddToCart(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	view, err := s.AddToCart("101", 1)
	require.NoError(t, err)
	view, err = s.AddToCart("101", 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Digital Stethoscope", view.Lines[0].Name)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(450)))
	assert.True(t, view.Shipping.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "$25", view.ShippingLabel)
	assert.Equal(t, 3, view.ItemCount)
}

func TestSession_AddToCart_UnknownProduct(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	_, err := s.AddToCart("999", 1)

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, s.Cart().Lines)
}

func TestSession_FreeShippingAboveThreshold(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	view, err := s.AddToCart("102", 2)

	require.NoError(t, err)
	assert.True(t, view.FreeShipping)
	assert.Equal(t, checkout.FreeShippingLabel, view.ShippingLabel)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("641.00")))
}

func TestSession_QuantityControls(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})
	_, err := s.AddToCart("103", 1)
	require.NoError(t, err)

	view, err := s.IncrementQuantity("103", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	view, err = s.SetQuantity("103", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	view, err = s.RemoveFromCart("103")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Subtotal.IsZero())
	assert.True(t, view.Shipping.Equal(decimal.NewFromInt(25)))
}

func TestSession_CartUsesActiveLanguage(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})
	_, err := s.AddToCart("104", 1)
	require.NoError(t, err)

	_, err = s.SetLanguage(i18n.Arabic)
	require.NoError(t, err)

	assert.Equal(t, "سرير مستشفى كهربائي", s.Cart().Lines[0].Name)
}

// ============================================
// Wishlist Tests
// ============================================

func TestSession_Wishlist(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	_, err := s.AddToWishlist("102")
	require.NoError(t, err)
	view, err := s.AddToWishlist("102")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)

	listed, view, err := s.ToggleWishlist("101")
	require.NoError(t, err)
	assert.True(t, listed)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "102", view.Items[0].ID)
	assert.True(t, view.Items[0].InWishlist)

	listed, _, err = s.ToggleWishlist("101")
	require.NoError(t, err)
	assert.False(t, listed)

	view = s.RemoveFromWishlist("102")
	assert.Zero(t, view.Count)
}

func TestSession_Wishlist_UnknownProduct(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	_, err := s.AddToWishlist("999")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, _, err = s.ToggleWishlist("999")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSession_ClearWishlist(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})
	for _, id := range []string{"101", "103"} {
		_, err := s.AddToWishlist(id)
		require.NoError(t, err)
	}

	view := s.ClearWishlist()

	assert.Zero(t, view.Count)
	assert.Empty(t, view.Items)
}

// ============================================
// Products & Localization Tests
// ============================================

func TestSession_ProductsStoresQuery(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})
	cfg := query.DefaultConfig()
	cfg.Sort = query.SortPriceLow
	cfg.Category = "Diagnostic"

	list := s.Products(cfg)

	require.Equal(t, 1, list.Count)
	assert.Equal(t, "101", list.Products[0].ID)
	assert.Equal(t, cfg, s.QueryConfig())
	assert.Equal(t, list, s.CurrentProducts())
}

func TestSession_ProductMarksCartAndWishlist(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})
	_, err := s.AddToCart("101", 2)
	require.NoError(t, err)
	_, err = s.AddToWishlist("101")
	require.NoError(t, err)

	p, err := s.Product("101")

	require.NoError(t, err)
	assert.Equal(t, 2, p.InCart)
	assert.True(t, p.InWishlist)

	_, err = s.Product("999")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSession_Language(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	bundle := s.ToggleLanguage()
	assert.Equal(t, i18n.Arabic, bundle.Language)
	assert.Equal(t, i18n.RTL, bundle.Direction)
	assert.Equal(t, "Respirators", newTestSession(t, nil).Categories()[0].Name)
	assert.Equal(t, "أجهزة تنفس", s.Categories()[0].Name)

	_, err := s.SetLanguage("fr")
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	assert.Equal(t, i18n.Arabic, s.Language())
}

func TestSession_CategoryTags(t *testing.T) {
	s := newTestSession(t, &countingNotifier{})

	assert.Equal(t, []string{"all", "Diagnostic", "Surgical", "Disposables", "Furniture"}, s.CategoryTags())
}

// ============================================
// Checkout Tests
// ============================================

func TestSession_Checkout_Success(t *testing.T) {
	notifier := &countingNotifier{}
	s := newTestSession(t, notifier)
	_, err := s.AddToCart("101", 1)
	require.NoError(t, err)
	_, err = s.SetContact(testContact)
	require.NoError(t, err)

	order, view, err := s.Checkout(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 1, notifier.calls)
	assert.Empty(t, view.Cart.Lines)
	assert.True(t, view.Status.Contact.IsZero())
	assert.Equal(t, checkout.OutcomeSucceeded, view.Status.LastOutcome)
}

func TestSession_Checkout_ValidationError(t *testing.T) {
	notifier := &countingNotifier{}
	s := newTestSession(t, notifier)
	_, err := s.AddToCart("101", 1)
	require.NoError(t, err)

	_, view, err := s.Checkout(context.Background())

	assert.ErrorIs(t, err, checkout.ErrInvalidContact)
	assert.Zero(t, notifier.calls)
	assert.Len(t, view.Cart.Lines, 1)
}

func TestSession_Checkout_RemoteFailure(t *testing.T) {
	notifier := &countingNotifier{err: errors.New("smtp down")}
	s := newTestSession(t, notifier)
	_, err := s.AddToCart("103", 2)
	require.NoError(t, err)
	_, err = s.SetContact(testContact)
	require.NoError(t, err)

	_, view, err := s.Checkout(context.Background())

	var rerr *checkout.RemoteError
	assert.ErrorAs(t, err, &rerr)
	assert.Len(t, view.Cart.Lines, 1)
	assert.Equal(t, testContact, view.Status.Contact)
}

func TestSession_EditsRejectedWhileSubmitting(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	notifier := checkout.NotifierFunc(func(ctx context.Context, sub checkout.Submission) error {
		close(started)
		<-release
		return nil
	})
	s := newTestSession(t, notifier)
	_, err := s.AddToCart("101", 1)
	require.NoError(t, err)
	_, err = s.SetContact(testContact)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Checkout(context.Background())
		done <- err
	}()
	<-started

	_, err = s.AddToCart("102", 1)
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	_, err = s.RemoveFromCart("101")
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	_, err = s.SetContact(checkout.Contact{})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	_, _, err = s.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)

	// Reads and wishlist edits stay available
	assert.Equal(t, checkout.StateSubmitting, s.CheckoutStatus().Status.State)
	_, err = s.AddToWishlist("102")
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
	assert.Empty(t, s.Cart().Lines)
}
