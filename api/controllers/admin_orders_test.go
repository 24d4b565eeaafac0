package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/internal/orders"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
)

func newAdminOrdersRouter(svc orders.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/orders", AdminListOrders(svc, nil))
	r.Get("/orders/{orderId}", AdminOrderDetail(svc, nil))
	r.Patch("/orders/{orderId}/status", AdminUpdateOrderStatus(svc, nil))
	return r
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{order: &orders.OrderDTO{ID: orderID, Status: enums.OrderStatusProcessing}}
	router := newAdminOrdersRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", bytes.NewReader([]byte(`{"status":"processing"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updateTarget != enums.OrderStatusProcessing {
		t.Fatalf("unexpected target %s", svc.updateTarget)
	}
}

func TestAdminUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	router := newAdminOrdersRouter(&stubOrdersService{})

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/status", bytes.NewReader([]byte(`{"status":"teleported"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatusSurfacesStateConflict(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed")}
	router := newAdminOrdersRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/status", bytes.NewReader([]byte(`{"status":"delivered"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestAdminListOrdersValidatesFilters(t *testing.T) {
	router := newAdminOrdersRouter(&stubOrdersService{list: &orders.OrderList{}})

	req := httptest.NewRequest(http.MethodGet, "/orders?status=floating", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status filter got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders?status=pending&date_from=2026-01-01", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
