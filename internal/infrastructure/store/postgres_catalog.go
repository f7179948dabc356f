package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/i18n"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	selectProductsSQL = `SELECT id, name_en, name_ar, category, price, rating, image, description_en, description_ar
		 FROM catalog_products
		 ORDER BY position ASC, id ASC`

	selectCategoriesSQL = `SELECT id, name_en, name_ar, icon, image
		 FROM catalog_categories
		 ORDER BY position ASC, id ASC`
)

// PostgresCatalogProvider loads the read-only catalog from PostgreSQL
type PostgresCatalogProvider struct {
	db *sql.DB
}

func NewPostgresCatalogProvider(db *sql.DB) *PostgresCatalogProvider {
	return &PostgresCatalogProvider{db: db}
}

// LoadCatalog reads products and categories in display order. Rows that fail
// catalog validation abort the load.
func (p *PostgresCatalogProvider) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	products, err := p.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := p.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	c, err := catalog.New(products, categories)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	log.Printf("[Store] Loaded %d products and %d categories from PostgreSQL", len(products), len(categories))
	return c, nil
}

func (p *PostgresCatalogProvider) loadProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := p.db.QueryContext(ctx, selectProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			prod  catalog.Product
			price decimal.Decimal
		)
		if err := rows.Scan(
			&prod.ID,
			&prod.Name.EN, &prod.Name.AR,
			&prod.Category,
			&price,
			&prod.Rating,
			&prod.Image,
			&prod.Description.EN, &prod.Description.AR,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		prod.Price = price
		products = append(products, prod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (p *PostgresCatalogProvider) loadCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := p.db.QueryContext(ctx, selectCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var (
			cat  catalog.Category
			name i18n.Text
			icon string
		)
		if err := rows.Scan(&cat.ID, &name.EN, &name.AR, &icon, &cat.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		kind, err := catalog.ParseIconKind(icon)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cat.ID, err)
		}
		cat.Name = name
		cat.Icon = kind
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Read once at startup
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
