package products

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"Storefront/internal/localstore"
)

type fakeAPI struct {
	mu sync.Mutex

	products   []Product
	categories []string

	listErr   error
	catErr    error
	createErr error
	updateErr error
	deleteErr error

	// block, when set, holds ListProducts until it is closed.
	block chan struct{}

	listCalls int
	created   []Draft
	updated   map[int64]Patch
	deleted   []int64
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]Product, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAPI) ListCategories(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catErr != nil {
		return nil, f.catErr
	}
	return append([]string(nil), f.categories...), nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, d)
	return nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id int64, p Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[int64]Patch{}
	}
	f.updated[id] = p
	return nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// countingKV records writes so tests can tell whether the cache was touched.
type countingKV struct {
	localstore.KV
	mu     sync.Mutex
	sets   int
	setErr error
}

func newCountingKV() *countingKV {
	return &countingKV{KV: localstore.NewMemStore()}
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	c.sets++
	err := c.setErr
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.KV.Set(ctx, key, value)
}

func (c *countingKV) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

var errRemote = errors.New("connection refused")

func seedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Title:       "Fjallraven - Foldsack No. 1 Backpack",
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Price:       109.95,
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			Price:       22.3,
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:      Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          5,
			Title:       "John Hardy Women's Legends Naga Bracelet",
			Description: "From our Legends Collection, the Naga was inspired by the mythical water dragon.",
			Price:       695,
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      Rating{Rate: 4.6, Count: 400},
		},
		{
			ID:          9,
			Title:       "WD 2TB Elements Portable External Hard Drive",
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers.",
			Price:       64,
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Rating:      Rating{Rate: 3.3, Count: 203},
		},
		{
			ID:          20,
			Title:       "DANVOUY Womens T Shirt Casual Cotton Short",
			Description: "95% cotton, 5% spandex. Casual and short sleeve.",
			Price:       12.99,
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/61pHAEJ4NML._AC_UX679_.jpg",
			Rating:      Rating{Rate: 3.6, Count: 145},
		},
	}
}

func seedCategories() []string {
	return []string{"electronics", "jewelery", "men's clothing", "women's clothing"}
}

func ptr[T any](v T) *T { return &v }
