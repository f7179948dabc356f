package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/medstore/internal/api"
	"github.com/example/medstore/internal/api/middleware"
	"github.com/example/medstore/internal/auth"
	"github.com/example/medstore/internal/checkout"
	"github.com/example/medstore/internal/config"
	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/email"
	"github.com/example/medstore/internal/i18n"
	"github.com/example/medstore/internal/infrastructure/kafka"
	"github.com/example/medstore/internal/infrastructure/store"
	"github.com/example/medstore/internal/notification"
	"github.com/example/medstore/internal/storefront"
)

// Per-address session creation buckets are forgotten after this long
const createLimiterIdle = 10 * time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("[API] Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[API] %v", err)
	}
	policy, err := cfg.ShippingPolicy()
	if err != nil {
		log.Fatalf("[API] %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Al-Andalus Medical Store")
	log.Println("[API] ========================================")
	log.Printf("[API] Catalog:  %s", cfg.Catalog.Source)
	log.Printf("[API] Notifier: %s", cfg.Notifier.Kind)
	log.Printf("[API] Language: %s", cfg.Language())
	log.Printf("[API] Shipping: %s fee under %s", policy.Fee, policy.Threshold)

	// Load catalog
	var provider catalog.Provider = catalog.NewStaticProvider()
	if cfg.Catalog.Source == config.CatalogPostgres {
		var db *sql.DB
		db, err = store.ConnectPostgres(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()
		log.Println("[API] Connected to PostgreSQL")
		provider = store.NewPostgresCatalogProvider(db)
	}
	products, err := provider.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("[API] Failed to load catalog: %v", err)
	}
	log.Printf("[API] Loaded %d products", products.Len())

	// Initialize notifier
	var notifier checkout.Notifier
	switch cfg.Notifier.Kind {
	case config.NotifierSMTP:
		notifier = email.NewService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		log.Printf("[API] SMTP: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)
	case config.NotifierKafka:
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		notifier = notification.NewKafkaNotifier(producer)
		log.Printf("[API] Kafka: %v", cfg.Kafka.Brokers)
		log.Printf("[API] Topic: %s", cfg.Kafka.Topic)
	default:
		notifier = notification.NewLogNotifier(cfg.Notifier.LogDelay)
	}

	// Initialize stores
	sessions := store.NewSessionStore(storefront.Deps{
		Catalog:  products,
		Notifier: notifier,
		Policy:   policy,
		Checkout: checkout.Options{
			Recipient: cfg.Checkout.Recipient,
			Subject:   cfg.Checkout.Subject,
			Language:  i18n.English,
			Timeout:   cfg.Checkout.Timeout,
		},
	}, cfg.Session.IdleTTL)

	tokens := auth.NewTokenService(cfg.Session.Secret, cfg.Session.TokenTTL)
	limiter := middleware.NewSessionRateLimiter(cfg.Checkout.RatePerSecond, cfg.Checkout.Burst, cfg.Session.IdleTTL)
	createLimiter := middleware.NewSessionRateLimiter(cfg.Session.CreateRatePerSecond, cfg.Session.CreateBurst, createLimiterIdle)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		sessions.RunJanitor(ctx, cfg.Session.SweepInterval)
	}()
	go func() {
		defer wg.Done()
		limiter.RunCleanup(ctx, cfg.Session.SweepInterval)
	}()
	go func() {
		defer wg.Done()
		createLimiter.RunCleanup(ctx, createLimiterIdle)
	}()

	// Initialize API
	handlers := api.NewHandlers(sessions, tokens, cfg.Language())
	router := api.NewRouter(api.RouterConfig{
		Handlers:        handlers,
		Tokens:          tokens,
		Sessions:        sessions,
		CheckoutLimiter: limiter,
		SessionLimiter:  createLimiter,
	})

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		log.Println("[API] ========================================")
		log.Printf("[API] Server started on %s", cfg.HTTP.Addr)
		log.Println("[API] ========================================")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}

	wg.Wait()
}
