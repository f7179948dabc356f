package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/example/medstore/internal/i18n"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Catalog Construction Tests
// ============================================

func TestStaticProvider_LoadCatalog(t *testing.T) {
	c, err := NewStaticProvider().LoadCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Len(t, c.Categories(), 5)

	products := c.Products()
	assert.Equal(t, "101", products[0].ID)
	assert.Equal(t, "104", products[3].ID)
}

func TestNew_DuplicateProductID(t *testing.T) {
	products := []Product{
		{ID: "1", Price: decimal.NewFromInt(10)},
		{ID: "1", Price: decimal.NewFromInt(20)},
	}

	c, err := New(products, nil)

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Nil(t, c)
}

func TestNew_InvalidProducts(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr error
	}{
		{"empty id", Product{ID: ""}, ErrInvalidProductID},
		{"negative price", Product{ID: "x", Price: decimal.NewFromInt(-1)}, ErrInvalidPrice},
		{"rating above five", Product{ID: "x", Rating: 5.1}, ErrInvalidRating},
		{"negative rating", Product{ID: "x", Rating: -0.5}, ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Product{tt.product}, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_ZeroPriceAllowed(t *testing.T) {
	c, err := New([]Product{{ID: "free", Price: decimal.Zero}}, nil)

	require.NoError(t, err)
	assert.True(t, c.Contains("free"))
}

func TestNew_InvalidCategoryIcon(t *testing.T) {
	_, err := New(nil, []Category{{ID: "1", Icon: IconUnknown}})
	assert.ErrorIs(t, err, ErrUnknownIcon)
}

func TestNew_DuplicateCategoryID(t *testing.T) {
	_, err := New(nil, []Category{
		{ID: "1", Icon: IconBed},
		{ID: "1", Icon: IconFlask},
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

// ============================================
// Lookup Tests
// ============================================

func TestCatalog_Lookups(t *testing.T) {
	c, err := NewStaticProvider().LoadCatalog(context.Background())
	require.NoError(t, err)

	p, ok := c.Product("102")
	assert.True(t, ok)
	assert.Equal(t, "Surgical Kit Pro", p.Name.In(i18n.English))

	price, ok := c.Price("102")
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("320.50").Equal(price))

	_, ok = c.Product("999")
	assert.False(t, ok)

	price, ok = c.Price("999")
	assert.False(t, ok)
	assert.True(t, price.IsZero())

	pos, ok := c.Position("103")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	c, err := NewStaticProvider().LoadCatalog(context.Background())
	require.NoError(t, err)

	products := c.Products()
	products[0].ID = "mutated"

	assert.Equal(t, "101", c.Products()[0].ID)
}

// ============================================
// Icon Tests
// ============================================

func TestParseIconKind(t *testing.T) {
	tests := []struct {
		name     string
		expected IconKind
	}{
		{"activity", IconActivity},
		{"stethoscope", IconStethoscope},
		{"bed", IconBed},
		{"trash-2", IconTrash},
		{"flask", IconFlask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseIconKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
			assert.Equal(t, tt.name, kind.String())
		})
	}
}

func TestParseIconKind_Unknown(t *testing.T) {
	kind, err := ParseIconKind("heart")

	assert.ErrorIs(t, err, ErrUnknownIcon)
	assert.Equal(t, IconUnknown, kind)
	assert.False(t, kind.Valid())
}

func TestIconKind_JSON(t *testing.T) {
	data, err := json.Marshal(IconTrash)
	require.NoError(t, err)
	assert.Equal(t, `"trash-2"`, string(data))

	var kind IconKind
	require.NoError(t, json.Unmarshal([]byte(`"flask"`), &kind))
	assert.Equal(t, IconFlask, kind)

	assert.Error(t, json.Unmarshal([]byte(`"heart"`), &kind))

	_, err = json.Marshal(IconUnknown)
	assert.Error(t, err)
}
