package catalog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
	// JWT, when set, guards every mutating route with an admin bearer token.
	JWT *auth.TokenMaker
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			s.log().Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.list)
		r.Get("/categories", s.categories)
		r.Get("/{id}", s.get)

		r.Group(func(r chi.Router) {
			if s.JWT != nil {
				r.Use(auth.RequireRole(s.JWT, auth.RoleAdmin))
			}
			r.Post("/", s.create)
			r.Put("/{id}", s.update)
			r.Delete("/{id}", s.delete)
		})
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.Store.Categories(r.Context())
	if err != nil {
		s.fail(w, r, "list categories failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cats)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get product failed", err, zap.Int64("id", id))
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in NewProduct
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", err.Error())
		return
	}

	p, err := s.Store.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, "create product failed", err)
		return
	}
	s.log().Info("product created", zap.Int64("id", p.ID), zap.String("category", p.Category))
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var patch Patch
	if err := kit.DecodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", err.Error())
		return
	}

	p, err := s.Store.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, "update product failed", err, zap.Int64("id", id))
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, "delete product failed", err, zap.Int64("id", id))
		return
	}
	s.log().Info("product deleted", zap.Int64("id", id))
	kit.WriteJSON(w, http.StatusOK, p)
}

// fail maps store errors onto responses; anything unexpected is logged as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
	case errors.Is(err, ErrInvalid):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product", err.Error())
	default:
		s.log().Error(msg, append(fields, zap.Error(err))...)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}
