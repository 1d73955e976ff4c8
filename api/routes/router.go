package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetside/storefront-backend/api/controllers"
	"github.com/streetside/storefront-backend/api/middleware"
	"github.com/streetside/storefront-backend/internal/auth"
	"github.com/streetside/storefront-backend/internal/categories"
	"github.com/streetside/storefront-backend/internal/orders"
	"github.com/streetside/storefront-backend/internal/products"
	"github.com/streetside/storefront-backend/pkg/config"
	"github.com/streetside/storefront-backend/pkg/db"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/logger"
	"github.com/streetside/storefront-backend/pkg/metrics"
	"github.com/streetside/storefront-backend/pkg/redis"
)

// Deps bundles everything the router needs. All services are constructed in
// cmd/api and injected here.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTP

	AuthService     auth.Service
	CategoryService categories.Service
	ProductService  products.Service
	OrderService    orders.Service
}

// NewRouter builds the full route table. Admin mutations live under /admin
// and order reads under /orders, both behind the same bearer-token guard;
// the storefront reads /api/products and posts /orders without credentials.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	var loginLimiter middleware.RateLimiterStore
	if deps.Redis != nil {
		loginLimiter = deps.Redis
	}

	requireAdmin := []func(http.Handler) http.Handler{
		middleware.Auth(cfg.JWT, logg),
		middleware.RequireRole(logg, string(enums.AdminRoleAdmin), string(enums.AdminRoleEditor)),
	}

	r.Get("/health", controllers.Health())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, logg))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.PublicListProducts(deps.ProductService, logg))
		r.Get("/products/{id}", controllers.PublicGetProduct(deps.ProductService, logg))
	})

	r.Route("/admin", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, loginLimiter, logg)).
			Post("/login", controllers.AdminLogin(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin...)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.ListCategories(deps.CategoryService, logg))
				r.Post("/", controllers.CreateCategory(deps.CategoryService, logg))
				r.Put("/{id}", controllers.UpdateCategory(deps.CategoryService, logg))
				r.Delete("/{id}", controllers.DeleteCategory(deps.CategoryService, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.ProductService, logg))
				r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
				r.Get("/{id}", controllers.AdminGetProduct(deps.ProductService, logg))
				r.Put("/{id}", controllers.UpdateProduct(deps.ProductService, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.ProductService, logg))
			})
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", controllers.CreateOrder(deps.OrderService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin...)
			r.Get("/", controllers.ListOrders(deps.OrderService, logg))
			r.Get("/{id}", controllers.GetOrder(deps.OrderService, logg))
			r.Patch("/{id}", controllers.UpdateOrder(deps.OrderService, logg))
			r.Delete("/{id}", controllers.DeleteOrder(deps.OrderService, logg))
		})
	})

	return r
}
