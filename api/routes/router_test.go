package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/internal/analytics"
	"github.com/calebhawthorne/regenmarket-backend/internal/auth"
	"github.com/calebhawthorne/regenmarket-backend/internal/catalog"
	"github.com/calebhawthorne/regenmarket-backend/internal/content"
	"github.com/calebhawthorne/regenmarket-backend/internal/orders"
	"github.com/calebhawthorne/regenmarket-backend/internal/users"
	pkgAuth "github.com/calebhawthorne/regenmarket-backend/pkg/auth"
	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(_ context.Context, _ string) (bool, error) {
	return true, nil
}

type stubAuthSvc struct{}

func (stubAuthSvc) Register(_ context.Context, _ auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthSvc) Login(_ context.Context, _ auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthSvc) Refresh(_ context.Context, _ *pkgAuth.AccessTokenClaims, _ auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (stubAuthSvc) Logout(_ context.Context, _ string) error { return nil }

func (stubAuthSvc) Me(_ context.Context, _ uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

type stubCatalogSvc struct{}

func (stubCatalogSvc) ListProducts(_ context.Context, _ catalog.ListProductsInput) (*catalog.ProductListResult, error) {
	return &catalog.ProductListResult{Products: []catalog.ProductDTO{}}, nil
}

func (stubCatalogSvc) GetProductBySlug(_ context.Context, _ string) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (stubCatalogSvc) CreateProduct(_ context.Context, _ catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (stubCatalogSvc) UpdateProduct(_ context.Context, _ uuid.UUID, _ catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (stubCatalogSvc) RetireProduct(_ context.Context, _ uuid.UUID) error { return nil }

func (stubCatalogSvc) ListCategories(_ context.Context) ([]catalog.CategoryDTO, error) {
	return nil, nil
}

func (stubCatalogSvc) CreateCategory(_ context.Context, _ catalog.CreateCategoryInput) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCatalogSvc) UpdateCategory(_ context.Context, _ uuid.UUID, _ catalog.UpdateCategoryInput) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCatalogSvc) DeleteCategory(_ context.Context, _ uuid.UUID) error { return nil }

type stubContentSvc struct{}

func (stubContentSvc) ListPublished(_ context.Context) ([]content.SectionDTO, error) {
	return nil, nil
}

func (stubContentSvc) GetPublishedByKey(_ context.Context, _ string) (*content.SectionDTO, error) {
	return &content.SectionDTO{}, nil
}

func (stubContentSvc) ListAll(_ context.Context) ([]content.SectionDTO, error) { return nil, nil }

func (stubContentSvc) Create(_ context.Context, _ content.CreateSectionInput) (*content.SectionDTO, error) {
	return &content.SectionDTO{}, nil
}

func (stubContentSvc) Update(_ context.Context, _ uuid.UUID, _ content.UpdateSectionInput) (*content.SectionDTO, error) {
	return &content.SectionDTO{}, nil
}

func (stubContentSvc) Unpublish(_ context.Context, _ uuid.UUID) error { return nil }

type stubOrdersSvc struct{}

func (stubOrdersSvc) Create(_ context.Context, _ orders.CreateOrderInput) (*orders.CreateOrderResult, error) {
	return &orders.CreateOrderResult{}, nil
}

func (stubOrdersSvc) GetUserOrder(_ context.Context, _, _ uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (stubOrdersSvc) ListUserOrders(_ context.Context, _ uuid.UUID, _ pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (stubOrdersSvc) GetOrderDetail(_ context.Context, _ uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (stubOrdersSvc) ListOrders(_ context.Context, _ pagination.Params, _ orders.AdminOrderFilters) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (stubOrdersSvc) UpdateStatus(_ context.Context, _ uuid.UUID, _ enums.OrderStatus) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

type stubAnalyticsSvc struct{}

func (stubAnalyticsSvc) SalesOverview(_ context.Context) (*analytics.SalesOverviewReport, error) {
	return &analytics.SalesOverviewReport{}, nil
}

func (stubAnalyticsSvc) CustomerSegmentation(_ context.Context) (*analytics.SegmentationReport, error) {
	return &analytics.SegmentationReport{}, nil
}

func (stubAnalyticsSvc) CohortAnalysis(_ context.Context, _ enums.CohortPeriod, _ enums.CohortMetric) (*analytics.CohortReport, error) {
	return &analytics.CohortReport{}, nil
}

func (stubAnalyticsSvc) ProductPerformance(_ context.Context, _ int) (*analytics.ProductPerformanceReport, error) {
	return &analytics.ProductPerformanceReport{}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
	return NewRouter(Params{
		Config:           cfg,
		SessionChecker:   stubSessionChecker{},
		Authorizer:       pkgAuth.NewRoleAuthorizer(),
		AuthService:      stubAuthSvc{},
		CatalogService:   stubCatalogSvc{},
		ContentService:   stubContentSvc{},
		OrdersService:    stubOrdersSvc{},
		AnalyticsService: stubAnalyticsSvc{},
	})
}

func mintRouterToken(t *testing.T, role enums.UserRole) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(
		config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
		time.Now().UTC(),
		pkgAuth.AccessTokenPayload{UserID: uuid.New(), Role: role, JTI: uuid.NewString()},
	)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterPublicEndpointsOpen(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready", "/api/v1/products", "/api/v1/categories", "/api/v1/content"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestRouterCustomerRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, enums.UserRoleCustomer))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterAdminRoutesForbiddenForCustomers(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterAnalyticsAdminOnly(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/analytics/sales-overview", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
