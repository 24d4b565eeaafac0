package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calebhawthorne/regenmarket-backend/api/controllers"
	"github.com/calebhawthorne/regenmarket-backend/api/middleware"
	"github.com/calebhawthorne/regenmarket-backend/internal/analytics"
	"github.com/calebhawthorne/regenmarket-backend/internal/auth"
	"github.com/calebhawthorne/regenmarket-backend/internal/catalog"
	"github.com/calebhawthorne/regenmarket-backend/internal/content"
	"github.com/calebhawthorne/regenmarket-backend/internal/orders"
	pkgAuth "github.com/calebhawthorne/regenmarket-backend/pkg/auth"
	"github.com/calebhawthorne/regenmarket-backend/pkg/auth/session"
	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
	"github.com/calebhawthorne/regenmarket-backend/pkg/redis"
)

// Params bundles everything the router wires together.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Authorizer     pkgAuth.Authorizer
	Registry       *prometheus.Registry

	AuthService      auth.Service
	CatalogService   catalog.Service
	ContentService   content.Service
	OrdersService    orders.Service
	AnalyticsService analytics.Service

	// Health probes; nil entries are skipped.
	ReadyChecks map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadyChecks))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	// Public storefront surface.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(p.CatalogService, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(p.CatalogService, logg))
		r.Get("/categories", controllers.ListCategories(p.CatalogService, logg))
		r.Get("/content", controllers.ListContentSections(p.ContentService, logg))
		r.Get("/content/{key}", controllers.GetContentSection(p.ContentService, logg))
	})

	// Authenticated customer surface.
	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Get("/", controllers.AuthMe(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceOrders, pkgAuth.ActionCreate, logg))
			r.Post("/orders", controllers.Checkout(p.OrdersService, logg))
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceOrders, pkgAuth.ActionRead, logg))
			r.Get("/orders", controllers.MyOrders(p.OrdersService, logg))
			r.Get("/orders/{orderId}", controllers.MyOrderDetail(p.OrdersService, logg))
		})
	})

	// Admin console surface.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceCatalog, pkgAuth.ActionManage, logg))
			r.Post("/products", controllers.AdminCreateProduct(p.CatalogService, logg))
			r.Patch("/products/{productId}", controllers.AdminUpdateProduct(p.CatalogService, logg))
			r.Delete("/products/{productId}", controllers.AdminRetireProduct(p.CatalogService, logg))
			r.Post("/categories", controllers.AdminCreateCategory(p.CatalogService, logg))
			r.Patch("/categories/{categoryId}", controllers.AdminUpdateCategory(p.CatalogService, logg))
			r.Delete("/categories/{categoryId}", controllers.AdminDeleteCategory(p.CatalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceContent, pkgAuth.ActionManage, logg))
			r.Get("/content", controllers.AdminListContentSections(p.ContentService, logg))
			r.Post("/content", controllers.AdminCreateContentSection(p.ContentService, logg))
			r.Patch("/content/{sectionId}", controllers.AdminUpdateContentSection(p.ContentService, logg))
			r.Delete("/content/{sectionId}", controllers.AdminUnpublishContentSection(p.ContentService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceOrders, pkgAuth.ActionManage, logg))
			r.Get("/orders", controllers.AdminListOrders(p.OrdersService, logg))
			r.Get("/orders/{orderId}", controllers.AdminOrderDetail(p.OrdersService, logg))
			r.Patch("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(p.OrdersService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(p.Authorizer, pkgAuth.ResourceAnalytics, pkgAuth.ActionRead, logg))
			r.Get("/analytics/sales-overview", controllers.AdminSalesOverview(p.AnalyticsService, logg))
			r.Get("/analytics/customer-segments", controllers.AdminCustomerSegmentation(p.AnalyticsService, logg))
			r.Get("/analytics/cohorts", controllers.AdminCohortAnalysis(p.AnalyticsService, logg))
			r.Get("/analytics/product-performance", controllers.AdminProductPerformance(p.AnalyticsService, logg))
		})
	})

	return r
}
