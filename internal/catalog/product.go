// Package catalog serves the remote product catalog the storefront reads
// from and mutates.
package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid product")
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// NewProduct is a create request. Price accepts a JSON number or a numeric string.
type NewProduct struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// Patch is an update request; absent fields keep their stored value.
type Patch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, in NewProduct) (Product, error)
	Update(ctx context.Context, id int64, p Patch) (Product, error)
	Delete(ctx context.Context, id int64) (Product, error)
}

func (in NewProduct) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.Wrap(ErrInvalid, "title is required")
	}
	if in.Price.IsNegative() {
		return errors.Wrap(ErrInvalid, "price must not be negative")
	}
	return nil
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.Wrap(ErrInvalid, "title must not be empty")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return errors.Wrap(ErrInvalid, "price must not be negative")
	}
	return nil
}

func (in NewProduct) product(id int64) Product {
	return Product{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price.Round(2).InexactFloat64(),
		Category:    in.Category,
		Image:       in.Image,
	}
}

func (p Patch) apply(dst Product) Product {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = p.Price.Round(2).InexactFloat64()
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	return dst
}

// categoriesOf lists distinct categories in order of first appearance.
func categoriesOf(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, 8)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
