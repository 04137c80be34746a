package controllers

import (
	"net/http"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	ordersvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

// Purchases returns the caller's most recent order with the merged
// checklist per purchased module. A customer with no orders gets a
// 200 with a null payload so the configurator can render an empty state.
func Purchases(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		summary, err := svc.GetUserPurchases(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
