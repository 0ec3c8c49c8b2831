package server

import (
	"net/http"

	"ventas/internal/auth"
	"ventas/internal/crud"
	"ventas/internal/diagnostic"
	"ventas/internal/httpx"
	ordercontroller "ventas/internal/order/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Modules struct {
	Auth             *auth.Module
	CRUD             *crud.Handlers
	Orders           *ordercontroller.OrderController
	Diagnostic       *diagnostic.Controller
	DiagnosticAPIKey string
}

// NewRouter assembles the HTTP surface. /login, /health and /testMessage are
// outside the bearer scheme; every entity route requires a token.
func NewRouter(m Modules, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.Trace)
	r.Use(httpx.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Post("/login", m.Auth.Controller.HandleLogin)
	r.Get("/health", m.Diagnostic.HandleHealth)
	r.With(auth.RequireAPIKey(m.DiagnosticAPIKey, logger)).Get("/testMessage", m.Diagnostic.HandleTestMessage)

	r.Group(func(r chi.Router) {
		r.Use(m.Auth.Middleware.RequireBearer)

		r.Route("/companies", m.CRUD.Companies.Mount)
		r.Route("/employees", m.CRUD.Employees.Mount)
		r.Route("/articles", m.CRUD.Articles.Mount)
		r.Route("/orderDetails", m.CRUD.OrderDetails.Mount)
		// legacy spelling still used by older clients
		r.Route("/ordersDetails", m.CRUD.OrderDetails.Mount)
		r.Route("/invoices", m.CRUD.Invoices.Mount)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", m.CRUD.Orders.List)
			r.Get("/{id}", m.CRUD.Orders.Get)
			r.Put("/{id}", m.CRUD.Orders.Update)
			r.Delete("/{id}", m.CRUD.Orders.Delete)
			m.Orders.Mount(r)
		})
	})

	return r
}
