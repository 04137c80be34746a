package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	ordersvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
)

func TestPurchasesReturnsSummary(t *testing.T) {
	t.Parallel()

	svc := &stubOrderService{
		summary: &ordersvc.PurchaseSummary{
			OrderID:       uuid.New(),
			OrderNumber:   "SB-20260831-XYZ789",
			CustomerID:    "cust_1",
			TotalAmount:   decimal.RequireFromString("39.00"),
			PaymentStatus: enums.PaymentStatusCompleted,
			Modules: []ordersvc.PurchasedModuleSummary{
				{ModuleID: "module_whatsapp_payments", ConfiguratorID: "payments", Name: "WhatsApp Payments"},
			},
		},
	}
	handler := Purchases(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases", nil)
	req = req.WithContext(middleware.WithCustomerID(req.Context(), "cust_1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var payload struct {
		Data struct {
			OrderNumber string `json:"order_number"`
			Modules     []struct {
				ConfiguratorID string `json:"configurator_id"`
			} `json:"modules"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.Data.OrderNumber != "SB-20260831-XYZ789" {
		t.Fatalf("unexpected order number %q", payload.Data.OrderNumber)
	}
	if len(payload.Data.Modules) != 1 || payload.Data.Modules[0].ConfiguratorID != "payments" {
		t.Fatalf("unexpected modules payload %+v", payload.Data.Modules)
	}
}

func TestPurchasesReturnsNullWhenCustomerHasNoOrders(t *testing.T) {
	t.Parallel()

	svc := &stubOrderService{}
	handler := Purchases(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases", nil)
	req = req.WithContext(middleware.WithCustomerID(req.Context(), "cust_new"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var payload struct {
		Data *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.Data != nil && string(*payload.Data) != "null" {
		t.Fatalf("expected null data, got %s", string(*payload.Data))
	}
}

func TestPurchasesRequiresCustomerIdentity(t *testing.T) {
	t.Parallel()

	handler := Purchases(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
