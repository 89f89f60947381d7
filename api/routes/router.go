package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rukkie/storefront/api/controllers"
	"github.com/rukkie/storefront/api/middleware"
	"github.com/rukkie/storefront/internal/cart"
	"github.com/rukkie/storefront/internal/reconcile"
	"github.com/rukkie/storefront/pkg/config"
	"github.com/rukkie/storefront/pkg/logger"
	"github.com/rukkie/storefront/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	flow *reconcile.Flow,
	cartStore *cart.Store,
	redisP redis.Pinger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/", controllers.PaymentReturn(flow, cartStore, logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP))
	})
	r.Get("/healthz", controllers.HealthLive(cfg))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
