package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
)

func TestRequireCustomerRejectsMissingHeader(t *testing.T) {
	mw := RequireCustomer(nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without customer header")
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected code %s got %s", pkgerrors.CodeUnauthorized, payload.Error.Code)
	}
}

func TestRequireCustomerInjectsContext(t *testing.T) {
	mw := RequireCustomer(nil)
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CustomerIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases", nil)
	req.Header.Set("X-Customer-Id", "  cust_123  ")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got != "cust_123" {
		t.Fatalf("expected trimmed customer id in context, got %q", got)
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	mw := RequestID(nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	mw := RequestID(nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("expected incoming request id echoed, got %q", got)
	}
}
