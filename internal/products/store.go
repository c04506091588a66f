package products

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"Storefront/internal/localstore"
	"Storefront/pkg/format"
)

const (
	DefaultCacheKey   = "products"
	DefaultFetchDelay = 2 * time.Second
)

// Store holds the product and category lists plus the user's filters.
//
// The mutex is never held across a remote call or a cache write, so
// overlapping operations interleave and the last write wins.
type Store struct {
	api   API
	cache localstore.KV
	log   *zap.Logger

	cacheKey   string
	fetchDelay time.Duration
	ids        *idSource

	mu               sync.RWMutex
	products         []Product
	categories       []string
	loading          bool
	errMsg           string
	searchQuery      string
	selectedCategory string
}

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFetchDelay sets the pause after a successful remote product fetch.
func WithFetchDelay(d time.Duration) Option {
	return func(s *Store) { s.fetchDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids.now = now }
}

func WithCacheKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.cacheKey = key
		}
	}
}

func NewStore(api API, cache localstore.KV, opts ...Option) *Store {
	s := &Store{
		api:        api,
		cache:      cache,
		log:        zap.NewNop(),
		cacheKey:   DefaultCacheKey,
		fetchDelay: DefaultFetchDelay,
		ids:        &idSource{now: time.Now},
	}
	if s.cache == nil {
		s.cache = localstore.NewMemStore()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchProducts loads products from the local cache when present and from
// the remote API otherwise. A cached list is used as-is, without any
// staleness check.
func (s *Store) FetchProducts(ctx context.Context) error {
	cached, ok, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil {
		s.log.Warn("read product cache", zap.Error(err))
	}
	if ok && cached != "" {
		var list []Product
		if err := json.Unmarshal([]byte(cached), &list); err != nil {
			return opError(ErrFetch, errors.Wrap(err, "decode product cache"))
		}
		s.mu.Lock()
		s.products = list
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	list, err := s.api.ListProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.errMsg = fetchProductsMessage
		s.mu.Unlock()
		s.log.Error("fetch products", zap.Error(err))
		return opError(ErrFetch, err)
	}
	if list == nil {
		list = []Product{}
	}

	s.mu.Lock()
	s.products = list
	s.mu.Unlock()

	s.persist(ctx, list)
	s.log.Info("products fetched", zap.Int("count", len(list)))

	sleep(ctx, s.fetchDelay)
	return nil
}

func (s *Store) FetchCategories(ctx context.Context) error {
	list, err := s.api.ListCategories(ctx)
	if err != nil {
		s.log.Error("fetch categories", zap.Error(err))
		return opError(ErrFetch, err)
	}

	s.mu.Lock()
	s.categories = list
	s.mu.Unlock()
	return nil
}

// AddProduct creates d remotely, then prepends a local copy with a fresh id
// and an empty rating. The remote response is not used.
func (s *Store) AddProduct(ctx context.Context, d Draft) (Product, error) {
	price, err := format.ParsePrice(d.Price)
	if err != nil {
		return Product{}, opError(ErrAdd, errors.Wrap(ErrInvalidPrice, err.Error()))
	}

	if err := s.api.CreateProduct(ctx, d); err != nil {
		s.log.Error("add product", zap.Error(err), zap.String("title", d.Title))
		return Product{}, opError(ErrAdd, err)
	}

	s.mu.Lock()
	p := Product{
		ID:          s.ids.next(s.hasIDLocked),
		Title:       d.Title,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		Image:       d.Image,
		Rating:      Rating{},
	}
	s.products = append([]Product{p}, s.products...)
	list := s.products
	s.mu.Unlock()

	s.persist(ctx, list)
	return p, nil
}

// UpdateProduct sends p remotely and merges it into the local record. When
// no local record has id the call still succeeds and the cache is left alone.
func (s *Store) UpdateProduct(ctx context.Context, id int64, p Patch) error {
	var price float64
	if p.Price != nil {
		v, err := format.ParsePrice(*p.Price)
		if err != nil {
			return opError(ErrUpdate, errors.Wrap(ErrInvalidPrice, err.Error()))
		}
		price = v
	}

	if err := s.api.UpdateProduct(ctx, id, p); err != nil {
		s.log.Error("update product", zap.Error(err), zap.Int64("id", id))
		return opError(ErrUpdate, err)
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.products, func(x Product) bool { return x.ID == id })
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("updated product not in local list", zap.Int64("id", id))
		return nil
	}
	next := slices.Clone(s.products)
	next[i] = next[i].apply(p, price)
	s.products = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.log.Error("delete product", zap.Error(err), zap.Int64("id", id))
		return opError(ErrDelete, err)
	}

	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.products), func(x Product) bool { return x.ID == id })
	s.products = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return nil
}

// ResetLocalData clears the cache only; loaded products stay in memory.
func (s *Store) ResetLocalData(ctx context.Context) error {
	return s.cache.Remove(ctx, s.cacheKey)
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()
}

func (s *Store) SetSelectedCategory(c string) {
	s.mu.Lock()
	s.selectedCategory = c
	s.mu.Unlock()
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message left by the last failed product fetch, if any.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

func (s *Store) SelectedCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCategory
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Loading:          s.loading,
		Error:            s.errMsg,
		SearchQuery:      s.searchQuery,
		SelectedCategory: s.selectedCategory,
		ProductCount:     len(s.products),
		CategoryCount:    len(s.categories),
	}
}

func (s *Store) hasIDLocked(id int64) bool {
	return slices.ContainsFunc(s.products, func(p Product) bool { return p.ID == id })
}

// persist writes list to the cache. Failures are logged, never returned.
func (s *Store) persist(ctx context.Context, list []Product) {
	b, err := json.Marshal(list)
	if err != nil {
		s.log.Warn("encode product cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey, string(b)); err != nil {
		s.log.Warn("write product cache", zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
