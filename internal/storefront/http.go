package storefront

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"Storefront/internal/products"
	"Storefront/internal/toast"
	"Storefront/pkg/format"
	"Storefront/pkg/kit"
)

const (
	DefaultSearchDebounce = 300 * time.Millisecond

	msgAdded   = "Product added successfully"
	msgUpdated = "Product updated successfully"
	msgDeleted = "Product deleted successfully"
	msgCleared = "Local data cleared"
)

type Server struct {
	Products *products.Store
	Toasts   *toast.Queue
	Log      *zap.Logger
	// Limiter, when set, throttles the mutating routes per client IP.
	Limiter *kit.IPRateLimiter
	// SummaryLength bounds the description excerpt in listings; zero means the format default.
	SummaryLength int

	searchSettled func(string)
}

// NewServer wires a storefront around an existing store and toast queue.
// Search query changes are logged once they stop changing for debounce.
func NewServer(p *products.Store, q *toast.Queue, log *zap.Logger, debounce time.Duration) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	s := &Server{Products: p, Toasts: q, Log: log}
	s.searchSettled = format.Debounce(func(query string) {
		log.Info("search query settled",
			zap.String("query", query),
			zap.Int("matches", len(p.FilteredProducts())),
		)
	}, debounce)
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/state", s.state)
	r.Get("/products", s.filtered)
	r.Get("/products/all", s.all)
	r.Get("/products/by-category", s.byCategory)
	r.Get("/categories", s.categories)
	r.Put("/filters", s.setFilters)
	r.Get("/toasts", s.toasts)
	r.Delete("/toasts/{id}", s.dismissToast)

	r.Group(func(r chi.Router) {
		if s.Limiter != nil {
			r.Use(s.Limiter.Middleware)
		}
		r.Post("/products/fetch", s.fetch)
		r.Post("/products", s.add)
		r.Put("/products/{id}", s.update)
		r.Delete("/products/{id}", s.delete)
		r.Delete("/cache", s.resetCache)
	})

	return r
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, stateView{
		State:  s.Products.Snapshot(),
		Toasts: s.Toasts.Len(),
	})
}

func (s *Server) filtered(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, viewProducts(s.Products.FilteredProducts(), s.SummaryLength))
}

func (s *Server) all(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, viewProducts(s.Products.Products(), s.SummaryLength))
}

func (s *Server) byCategory(w http.ResponseWriter, r *http.Request) {
	groups := s.Products.ProductsByCategory()
	out := make([]groupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupView{
			categoryView: viewCategory(g.Category),
			Products:     viewProducts(g.Products, s.SummaryLength),
		})
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats := s.Products.Categories()
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, viewCategory(c))
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

type filtersRequest struct {
	SearchQuery *string `json:"search_query"`
	Category    *string `json:"category"`
}

func (s *Server) setFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", err.Error())
		return
	}

	if req.SearchQuery != nil {
		s.Products.SetSearchQuery(*req.SearchQuery)
		if s.searchSettled != nil {
			s.searchSettled(*req.SearchQuery)
		}
	}
	if req.Category != nil {
		s.Products.SetSelectedCategory(*req.Category)
	}

	kit.WriteJSON(w, http.StatusOK, viewProducts(s.Products.FilteredProducts(), s.SummaryLength))
}

// fetch refreshes products and categories concurrently. The two loads are
// independent, so a categories failure does not hide a products result.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	var g errgroup.Group
	var productsErr, categoriesErr error

	g.Go(func() error {
		productsErr = s.Products.FetchProducts(r.Context())
		return productsErr
	})
	g.Go(func() error {
		categoriesErr = s.Products.FetchCategories(r.Context())
		return categoriesErr
	})

	if err := g.Wait(); err != nil {
		s.Log.Warn("fetch failed",
			zap.NamedError("products_error", productsErr),
			zap.NamedError("categories_error", categoriesErr),
		)
		details := map[string]any{}
		if productsErr != nil {
			details["products"] = productsErr.Error()
		}
		if categoriesErr != nil {
			details["categories"] = categoriesErr.Error()
		}
		kit.WriteError(w, r, http.StatusBadGateway, "fetch failed", details)
		return
	}

	s.state(w, r)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var d products.Draft
	if err := kit.DecodeJSON(w, r, &d); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", err.Error())
		return
	}
	if d.Image != "" && !format.IsValidURL(d.Image) {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid image url", map[string]any{"image": d.Image})
		return
	}

	p, err := s.Products.AddProduct(r.Context(), d)
	if err != nil {
		s.mutationFailed(w, r, err)
		return
	}

	s.Toasts.Success(msgAdded)
	kit.WriteJSON(w, http.StatusCreated, viewProduct(p, s.SummaryLength))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var p products.Patch
	if err := kit.DecodeJSON(w, r, &p); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", err.Error())
		return
	}
	if p.Image != nil && *p.Image != "" && !format.IsValidURL(*p.Image) {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid image url", map[string]any{"image": *p.Image})
		return
	}

	if err := s.Products.UpdateProduct(r.Context(), id, p); err != nil {
		s.mutationFailed(w, r, err)
		return
	}

	s.Toasts.Success(msgUpdated)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := s.Products.DeleteProduct(r.Context(), id); err != nil {
		s.mutationFailed(w, r, err)
		return
	}

	s.Toasts.Success(msgDeleted)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetCache(w http.ResponseWriter, r *http.Request) {
	if err := s.Products.ResetLocalData(r.Context()); err != nil {
		s.Log.Error("reset local data failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.Toasts.Show(msgCleared, toast.SeverityInfo, 0)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toasts(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Toasts.List())
}

func (s *Server) dismissToast(w http.ResponseWriter, r *http.Request) {
	s.Toasts.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// mutationFailed reports a failed add/update/delete as an error toast and
// an HTTP error. Bad input is the caller's fault; anything else is upstream.
func (s *Server) mutationFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.Toasts.Error(userMessage(err))

	status := http.StatusBadGateway
	if errors.Is(err, products.ErrInvalidPrice) {
		status = http.StatusBadRequest
	} else {
		s.Log.Warn("catalog mutation failed", zap.Error(err))
	}
	kit.WriteError(w, r, status, userMessage(err), err.Error())
}

func userMessage(err error) string {
	for _, kind := range []error{products.ErrAdd, products.ErrUpdate, products.ErrDelete} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "request failed"
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

// Close stops pending toast timers.
func (s *Server) Close() {
	s.Toasts.Close()
}
