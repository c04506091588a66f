package storefront

import (
	"Storefront/internal/products"
	"Storefront/pkg/format"
)

// productView is a product with its display strings precomputed.
type productView struct {
	products.Product
	PriceLabel    string `json:"price_label"`
	CategoryLabel string `json:"category_label"`
	Summary       string `json:"summary"`
}

type categoryView struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

type groupView struct {
	categoryView
	Products []productView `json:"products"`
}

type stateView struct {
	products.State
	Toasts int `json:"toasts"`
}

func viewProduct(p products.Product, summaryLen int) productView {
	return productView{
		Product:       p,
		PriceLabel:    format.Price(p.Price),
		CategoryLabel: format.Category(p.Category),
		Summary:       format.Truncate(p.Description, summaryLen),
	}
}

func viewProducts(list []products.Product, summaryLen int) []productView {
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, viewProduct(p, summaryLen))
	}
	return out
}

func viewCategory(c string) categoryView {
	return categoryView{Category: c, Label: format.Category(c)}
}
