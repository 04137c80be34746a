package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	deploysvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/deployment"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

type stubDeploymentService struct {
	customerID   string
	customerInfo types.JSONMap
	result       *deploysvc.Result
	err          error
}

func (s *stubDeploymentService) InitiateDeployment(_ context.Context, customerID string, customerInfo types.JSONMap) (*deploysvc.Result, error) {
	s.customerID = customerID
	s.customerInfo = customerInfo
	return s.result, s.err
}

func TestInitiateDeploymentAccepted(t *testing.T) {
	t.Parallel()

	svc := &stubDeploymentService{
		result: &deploysvc.Result{
			DeploymentID: "dep_42",
			OrderID:      "ord_7",
			Warnings:     []string{"module Analytics Dashboard is only 40% configured"},
		},
	}
	handler := InitiateDeployment(svc, nil)

	body := `{"customer_info":{"businessName":"Flor y Canto"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deployment", strings.NewReader(body))
	req = req.WithContext(middleware.WithCustomerID(req.Context(), "cust_1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.customerID != "cust_1" {
		t.Fatalf("expected customer id from context, got %q", svc.customerID)
	}
	if svc.customerInfo["businessName"] != "Flor y Canto" {
		t.Fatalf("expected customer info forwarded, got %+v", svc.customerInfo)
	}

	var payload struct {
		Data struct {
			DeploymentID string   `json:"deployment_id"`
			Warnings     []string `json:"warnings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.Data.DeploymentID != "dep_42" {
		t.Fatalf("unexpected deployment id %q", payload.Data.DeploymentID)
	}
	if len(payload.Data.Warnings) != 1 {
		t.Fatalf("expected warnings carried through, got %+v", payload.Data.Warnings)
	}
}

func TestInitiateDeploymentAllowsEmptyBody(t *testing.T) {
	t.Parallel()

	svc := &stubDeploymentService{result: &deploysvc.Result{DeploymentID: "dep_1", OrderID: "ord_1"}}
	handler := InitiateDeployment(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deployment", nil)
	req = req.WithContext(middleware.WithCustomerID(req.Context(), "cust_1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}
}

func TestInitiateDeploymentMapsChecklistFailureToValidation(t *testing.T) {
	t.Parallel()

	svc := &stubDeploymentService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "module WhatsApp Payments is missing required configuration: Provider API Key"),
	}
	handler := InitiateDeployment(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deployment", nil)
	req = req.WithContext(middleware.WithCustomerID(req.Context(), "cust_1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if !strings.Contains(payload.Error.Message, "Provider API Key") {
		t.Fatalf("expected failing item named in message, got %q", payload.Error.Message)
	}
}

func TestInitiateDeploymentRequiresCustomerIdentity(t *testing.T) {
	t.Parallel()

	handler := InitiateDeployment(&stubDeploymentService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deployment", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
