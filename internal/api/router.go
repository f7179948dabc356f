package api

import (
	"net/http"
	"strings"

	"github.com/example/medstore/internal/api/middleware"
	"github.com/example/medstore/internal/auth"
)

type RouterConfig struct {
	Handlers        *Handlers
	Tokens          *auth.TokenService
	Sessions        middleware.SessionResolver
	CheckoutLimiter *middleware.SessionRateLimiter
	SessionLimiter  *middleware.SessionRateLimiter
}

func methodNotAllowed(w http.ResponseWriter) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handlers
	mux := http.NewServeMux()
	withSession := middleware.SessionMiddleware(cfg.Tokens, cfg.Sessions)

	// Public
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	create := http.Handler(http.HandlerFunc(h.CreateSession))
	if cfg.SessionLimiter != nil {
		create = cfg.SessionLimiter.Middleware(create)
	}

	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			create.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/i18n", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetLocale(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Session scoped
	mux.Handle("/session/language", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.SetLanguage(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/categories", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCategories(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	// Products
	mux.Handle("/products", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetProducts(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/products/", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetProduct(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	// Cart
	mux.Handle("/cart", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/cart/items", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.AddToCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/cart/items/", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/increment") && r.Method == http.MethodPost:
			h.IncrementCartItem(w, r)
		case r.Method == http.MethodPut:
			h.SetCartQuantity(w, r)
		case r.Method == http.MethodDelete:
			h.RemoveFromCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	// Wishlist
	mux.Handle("/wishlist", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetWishlist(w, r)
		case http.MethodDelete:
			h.ClearWishlist(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/wishlist/items", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.AddToWishlist(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/wishlist/items/", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/toggle") && r.Method == http.MethodPost:
			h.ToggleWishlist(w, r)
		case r.Method == http.MethodDelete:
			h.RemoveFromWishlist(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	// Checkout
	submit := http.Handler(http.HandlerFunc(h.SubmitCheckout))
	if cfg.CheckoutLimiter != nil {
		submit = cfg.CheckoutLimiter.Middleware(submit)
	}

	mux.Handle("/checkout", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCheckout(w, r)
		case http.MethodPost:
			submit.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	mux.Handle("/checkout/contact", withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.SetContact(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	return middleware.Logging(mux)
}
