// Package products is the storefront's catalog state: it caches the remote
// product list locally, derives filtered and grouped views from it, and
// mirrors create/update/delete calls into the cache.
package products

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

// Draft is a product as entered by the user. Price is raw form input.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// Patch carries the fields an update changes; nil fields are kept.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Category    *string `json:"category,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type CategoryGroup struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

// State is a point-in-time copy of the store's flags and filters.
type State struct {
	Loading          bool   `json:"loading"`
	Error            string `json:"error,omitempty"`
	SearchQuery      string `json:"search_query"`
	SelectedCategory string `json:"selected_category"`
	ProductCount     int    `json:"product_count"`
	CategoryCount    int    `json:"category_count"`
}

func (p Product) apply(patch Patch, price float64) Product {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Price != nil {
		p.Price = price
	}
	return p
}
