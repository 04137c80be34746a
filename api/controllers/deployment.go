package controllers

import (
	"net/http"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/validators"
	deploysvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/deployment"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

// InitiateDeployment validates the caller's checklist and, when complete,
// hands the configuration off to the automation platform.
func InitiateDeployment(svc deploysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deployment service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity required"))
			return
		}

		var payload deploymentRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		result, err := svc.InitiateDeployment(r.Context(), customerID, payload.CustomerInfo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, result)
	}
}

type deploymentRequest struct {
	CustomerInfo types.JSONMap `json:"customer_info,omitempty"`
}
