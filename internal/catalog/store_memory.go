package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

// NewMemStore returns a store holding products. Later creates get IDs above
// the highest seeded one.
func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{m: make(map[int64]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

func (s *MemStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return categoriesOf(s.sortedLocked()), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) Create(ctx context.Context, in NewProduct) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p := in.product(s.nextID)
	s.m[p.ID] = p
	return p, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, patch Patch) (Product, error) {
	if err := patch.Validate(); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	p = patch.apply(p)
	s.m[id] = p
	return p, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	delete(s.m, id)
	return p, nil
}

func (s *MemStore) sortedLocked() []Product {
	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
