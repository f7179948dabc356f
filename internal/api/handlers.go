package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/medstore/internal/api/middleware"
	"github.com/example/medstore/internal/auth"
	"github.com/example/medstore/internal/checkout"
	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/i18n"
	"github.com/example/medstore/internal/query"
	"github.com/example/medstore/internal/storefront"
	"github.com/shopspring/decimal"
)

// SessionCreator starts new storefront sessions
type SessionCreator interface {
	Create(lang i18n.Language) *storefront.Session
}

type Handlers struct {
	sessions    SessionCreator
	tokens      *auth.TokenService
	defaultLang i18n.Language
}

func NewHandlers(sessions SessionCreator, tokens *auth.TokenService, defaultLang i18n.Language) *Handlers {
	if !defaultLang.Valid() {
		defaultLang = i18n.Default
	}
	return &Handlers{
		sessions:    sessions,
		tokens:      tokens,
		defaultLang: defaultLang,
	}
}

// Session Handlers

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	lang := h.defaultLang
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		lang = i18n.Negotiate(accept)
	}

	session := h.sessions.Create(lang)
	token, expiresAt, err := h.tokens.Issue(session.ID)
	if err != nil {
		log.Printf("[API] Failed to issue session token: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusCreated, map[string]any{
		"session_id": session.ID,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"locale":     session.Locale(),
	})
}

func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		bundle i18n.LocaleBundle
		err    error
	)
	if strings.EqualFold(strings.TrimSpace(req.Language), "toggle") {
		bundle = session.ToggleLanguage()
	} else {
		lang, perr := i18n.ParseLanguage(req.Language)
		if perr != nil {
			respondDomainError(w, perr)
			return
		}
		bundle, err = session.SetLanguage(lang)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bundle)
}

// GetLocale serves the string bundle for ?lang=, else the Accept-Language header
func (h *Handlers) GetLocale(w http.ResponseWriter, r *http.Request) {
	lang := h.defaultLang
	if q := r.URL.Query().Get("lang"); q != "" {
		parsed, err := i18n.ParseLanguage(q)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		lang = parsed
	} else if accept := r.Header.Get("Accept-Language"); accept != "" {
		lang = i18n.Negotiate(accept)
	}
	respondJSON(w, http.StatusOK, i18n.Bundle(lang))
}

// Catalog Handlers

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": session.Categories(),
		"filters":    session.CategoryTags(),
	})
}

// GetProducts applies any query parameters on top of the session's listing state
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	cfg, err := queryConfigFrom(r, session.QueryConfig())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, session.Products(cfg))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	id := extractPathParam(r.URL.Path, "/products/")

	product, err := session.Product(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, mustSession(r).Cart())
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := session.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := session.SetQuantity(productID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) IncrementCartItem(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	productID := strings.TrimSuffix(extractPathParam(r.URL.Path, "/cart/items/"), "/increment")

	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := session.IncrementQuantity(productID, req.Delta)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	view, err := session.RemoveFromCart(productID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Wishlist Handlers

func (h *Handlers) GetWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, mustSession(r).Wishlist())
}

func (h *Handlers) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := session.AddToWishlist(req.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	productID := strings.TrimSuffix(extractPathParam(r.URL.Path, "/wishlist/items/"), "/toggle")

	listed, view, err := session.ToggleWishlist(productID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"in_wishlist": listed,
		"wishlist":    view,
	})
}

func (h *Handlers) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)
	productID := extractPathParam(r.URL.Path, "/wishlist/items/")
	respondJSON(w, http.StatusOK, session.RemoveFromWishlist(productID))
}

func (h *Handlers) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, mustSession(r).ClearWishlist())
}

// Checkout Handlers

func (h *Handlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, mustSession(r).CheckoutStatus())
}

func (h *Handlers) SetContact(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	var contact checkout.Contact
	if err := decodeJSON(r, &contact); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := session.SetContact(contact)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	session := mustSession(r)

	order, view, err := session.Checkout(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"order_ref": order.Reference,
		"total":     checkout.FormatMoney(order.Total),
		"shipping":  order.ShippingLabel(),
		"checkout":  view,
		"message":   i18n.Bundle(session.Language()).Strings.Checkout.OrderPlaced,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps core errors onto HTTP statuses
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}

	var rerr *checkout.RemoteError
	switch {
	case errors.As(err, &rerr):
		respondError(w, http.StatusBadGateway, rerr.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storefront.ErrCheckoutInProgress), errors.Is(err, checkout.ErrSubmissionInProgress):
		respondError(w, http.StatusConflict, storefront.ErrCheckoutInProgress.Error())
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, i18n.ErrUnsupportedLanguage),
		errors.Is(err, query.ErrUnknownSortKey):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[API] Unhandled error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// decodeJSON tolerates an empty body
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// mustSession is only used behind SessionMiddleware
func mustSession(r *http.Request) *storefront.Session {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		panic("api: handler reached without a session")
	}
	return session
}

func queryConfigFrom(r *http.Request, base query.Config) (query.Config, error) {
	cfg := base
	q := r.URL.Query()

	if q.Has("search") {
		cfg.Search = q.Get("search")
	}
	if q.Has("category") {
		cfg.Category = q.Get("category")
	}
	if v := q.Get("max_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return cfg, errors.New("max_price must be a number")
		}
		cfg.MaxPrice = price
	}
	if q.Has("sort") {
		key, err := query.ParseSortKey(q.Get("sort"))
		if err != nil {
			return cfg, err
		}
		cfg.Sort = key
	}
	return cfg, nil
}
