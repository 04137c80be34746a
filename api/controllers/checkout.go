package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/validators"
	ordersvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

// Checkout records an order for the caller's module selection. Payment has
// already been confirmed upstream before this endpoint is hit.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateOrder(r.Context(), ordersvc.CreateOrderInput{
			CustomerID:        customerID,
			CustomerInfo:      payload.CustomerInfo,
			SelectedModuleIDs: payload.SelectedModules,
			TotalAmount:       payload.TotalAmount,
			PaymentMethod:     enums.PaymentMethod(payload.PaymentMethod),
			PaymentReference:  payload.PaymentReference,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type checkoutRequest struct {
	SelectedModules  []string        `json:"selected_modules" validate:"required,min=1,dive,required"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaymentMethod    string          `json:"payment_method" validate:"required"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	CustomerInfo     types.JSONMap   `json:"customer_info,omitempty"`
}
