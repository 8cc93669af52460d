package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coilworks/internal/access"
	cartctrl "coilworks/internal/cart/controller"
	companyctrl "coilworks/internal/company/controller"
	customerctrl "coilworks/internal/customer/controller"
	"coilworks/internal/domain"
	"coilworks/internal/infrastructure/logger"
	"coilworks/internal/infrastructure/metrics"
	orderctrl "coilworks/internal/order/controller"
	productctrl "coilworks/internal/product/controller"
	workflowctrl "coilworks/internal/workflow/controller"
)

type Handlers struct {
	Products  *productctrl.Controller
	Cart      *cartctrl.Controller
	Enquiries *workflowctrl.RecordController
	Orders    *workflowctrl.RecordController
	Health    *orderctrl.HealthController
	Customers *customerctrl.Controller
	Settings  *companyctrl.Controller
}

// recordReaders may open a single enquiry or order; the handler narrows
// customers to their own.
var recordReaders = access.Roles(domain.RoleUser, domain.RoleAdmin, domain.RoleManager)

func NewRouter(h Handlers, verifier access.Verifier, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(logger.Trace)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(access.Authenticate(verifier, log))

		r.Get("/settings", h.Settings.HandleGet)
		r.With(access.RequireRoles(access.AdminOnly)).Put("/settings", h.Settings.HandleUpdate)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.HandleList)
			r.Get("/{id}", h.Products.HandleGet)
			r.With(access.RequireRoles(access.CatalogEditors)).Post("/", h.Products.HandleCreate)
			r.With(access.RequireRoles(access.CatalogEditors)).Put("/{id}", h.Products.HandleUpdate)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(access.RequireRoles(access.Customers))
			r.Post("/add", h.Cart.HandleAdd)
			r.Post("/addCustomCoil", h.Cart.HandleAddCustomCoil)
			r.Post("/save", h.Cart.HandleSave)
			r.Delete("/{productId}", h.Cart.HandleRemove)
			r.Get("/{userId}", h.Cart.HandleGet)
		})

		r.Route("/enquire", func(r chi.Router) {
			r.With(access.RequireRoles(access.Customers)).Post("/", h.Enquiries.HandleSubmit)
			r.With(access.RequireRoles(access.OrderManagers)).Get("/", h.Enquiries.HandleList)
			r.With(access.RequireRoles(access.Customers)).Get("/userid/{userId}", h.Enquiries.HandleListForUser)
			r.With(access.RequireRoles(recordReaders)).Get("/{id}", h.Enquiries.HandleGet)
			r.With(access.RequireRoles(access.OrderManagers)).Patch("/{id}/status", h.Enquiries.HandleSetStatus)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/health", h.Health.HandleHealth)
			r.With(access.RequireRoles(access.Customers)).Post("/", h.Orders.HandleSubmit)
			r.With(access.RequireRoles(access.OrderManagers)).Get("/", h.Orders.HandleList)
			r.With(access.RequireRoles(access.Customers)).Get("/userid/{userId}", h.Orders.HandleListForUser)
			r.With(access.RequireRoles(recordReaders)).Get("/{id}", h.Orders.HandleGet)
			r.With(access.RequireRoles(access.OrderManagers)).Put("/{id}", h.Orders.HandleSetStatus)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(access.RequireRoles(access.AdminOnly))
			r.Put("/status", h.Customers.HandleSetStatus)
			r.Get("/{adminId}", h.Customers.HandleList)
			r.Delete("/{id}", h.Customers.HandleDelete)
		})
	})

	return r
}
