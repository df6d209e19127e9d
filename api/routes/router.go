package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/foodcart/api/controllers"
	"github.com/angelmondragon/foodcart/api/middleware"
	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/pkg/config"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backend controllers.Pinger,
	sessions controllers.Sessions,
	menu catalog.Menu,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, backend))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(menu))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(sessions, logg))
				r.Post("/items", controllers.CartAddItem(sessions, menu, logg))
				r.Patch("/items/{itemId}", controllers.CartChangeQuantity(sessions, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(sessions, logg))
				r.Post("/checkout", controllers.CartCheckout(sessions, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutFetch(sessions, logg))
				r.Post("/", controllers.CheckoutSubmit(sessions, logg))
			})

			r.Get("/orders", controllers.OrdersList(sessions, logg))

			r.Route("/session", func(r chi.Router) {
				r.Post("/login", controllers.SessionLogin(sessions, logg))
				r.Post("/logout", controllers.SessionLogout(sessions, logg))
			})

			r.Get("/notice", controllers.NoticeFetch(sessions, logg))
		})
	})

	return r
}
