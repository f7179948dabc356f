package catalog

import (
	"context"

	"github.com/example/medstore/internal/i18n"
	"github.com/shopspring/decimal"
)

// StaticProvider serves the built-in Al-Andalus catalog
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (StaticProvider) LoadCatalog(ctx context.Context) (*Catalog, error) {
	return New(SeedProducts(), SeedCategories())
}

// SeedCategories returns the home page categories
func SeedCategories() []Category {
	return []Category{
		{
			ID:    "1",
			Name:  i18n.Text{EN: "Respirators", AR: "أجهزة تنفس"},
			Icon:  IconActivity,
			Image: "./assets/category1.jpg",
		},
		{
			ID:    "2",
			Name:  i18n.Text{EN: "Blood glucose meters and strips", AR: "أجهزة وشرايط سكر"},
			Icon:  IconStethoscope,
			Image: "./assets/category2.jpg",
		},
		{
			ID:    "3",
			Name:  i18n.Text{EN: "Hospital Furniture", AR: "أثاث المستشفيات"},
			Icon:  IconBed,
			Image: "https://picsum.photos/id/3/400/300",
		},
		{
			ID:    "4",
			Name:  i18n.Text{EN: "Disposables", AR: "مستلزمات استهلاكية"},
			Icon:  IconTrash,
			Image: "https://picsum.photos/id/4/400/300",
		},
		{
			ID:    "5",
			Name:  i18n.Text{EN: "Lab Equipment", AR: "معدات معملية"},
			Icon:  IconFlask,
			Image: "https://picsum.photos/id/5/400/300",
		},
	}
}

// SeedProducts returns the storefront products in featured order
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "101",
			Name:        i18n.Text{EN: "Digital Stethoscope", AR: "سماعة طبية رقمية"},
			Category:    "Diagnostic",
			Price:       decimal.RequireFromString("150.00"),
			Rating:      4.8,
			Image:       "https://picsum.photos/id/201/300/300",
			Description: i18n.Text{EN: "High precision digital stethoscope for professionals.", AR: "سماعة طبية رقمية عالية الدقة للمحترفين."},
		},
		{
			ID:          "102",
			Name:        i18n.Text{EN: "Surgical Kit Pro", AR: "طقم جراحي احترافي"},
			Category:    "Surgical",
			Price:       decimal.RequireFromString("320.50"),
			Rating:      4.9,
			Image:       "https://picsum.photos/id/202/300/300",
			Description: i18n.Text{EN: "Complete stainless steel surgical instrument set.", AR: "طقم أدوات جراحية كامل من الفولاذ المقاوم للصدأ."},
		},
		{
			ID:          "103",
			Name:        i18n.Text{EN: "Medical Face Masks", AR: "كمامات طبية"},
			Category:    "Disposables",
			Price:       decimal.RequireFromString("15.00"),
			Rating:      4.5,
			Image:       "https://picsum.photos/id/203/300/300",
			Description: i18n.Text{EN: "Box of 50 3-ply medical grade face masks.", AR: "علبة 50 كمامة طبية ثلاثية الطبقات."},
		},
		{
			ID:          "104",
			Name:        i18n.Text{EN: "Electric Hospital Bed", AR: "سرير مستشفى كهربائي"},
			Category:    "Furniture",
			Price:       decimal.RequireFromString("1200.00"),
			Rating:      5.0,
			Image:       "https://picsum.photos/id/204/300/300",
			Description: i18n.Text{EN: "Fully adjustable electric bed with remote control.", AR: "سرير كهربائي قابل للتعديل بالكامل مع جهاز تحكم عن بعد."},
		},
	}
}
