package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httphandler "github.com/rookgm/cargolabel/internal/handler/http"
	"github.com/rookgm/cargolabel/internal/middleware"
	"github.com/rookgm/cargolabel/internal/service"
	"go.uber.org/zap"
)

// Handlers groups HTTP handlers served by the router
type Handlers struct {
	User    *httphandler.UserHandler
	Label   *httphandler.LabelHandler
	Order   *httphandler.OrderHandler
	Balance *httphandler.BalanceHandler
	Events  *httphandler.EventsHandler
}

// NewRouter creates router with public and authenticated routes
func NewRouter(h Handlers, token service.TokenService, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/api/user/register", h.User.RegisterUser())
	router.Post("/api/user/login", h.User.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(httphandler.AuthMiddleware(token))
		group.Post("/api/labels/preview", h.Label.PreviewLabels())
		group.Post("/api/labels", h.Label.CreateLabels())
		group.Post("/api/labels/cancel", h.Label.CancelLabels())
		group.Post("/api/orders/{id}/label/cancel", h.Label.CancelOrderLabel())
		group.Get("/api/orders/{id}/quote", h.Order.QuoteOrder())
		group.Get("/api/balance", h.Balance.GetBalance())
		group.Get("/api/labels", h.Balance.ListLabels())
		group.Get("/api/events", h.Events.Stream())
	})

	return router
}
