package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	kit.Base(r, deps.Log)
	kit.MetricsConfig{
		Service:  deps.Service,
		Registry: deps.Registry,
		Enabled:  deps.MetricsEnabled,
		Token:    deps.MetricsToken,
	}.Mount(r)

	r.Mount("/", s.Routes())
	return r
}
