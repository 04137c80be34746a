package controllers

import (
	"net/http"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/middleware"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/validators"
	configsvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/configurations"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

// SaveConfigurations persists a batch of checklist answers against the
// caller's latest order. Modules the customer never bought are skipped,
// not rejected.
func SaveConfigurations(svc configsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configuration service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity required"))
			return
		}

		var payload saveConfigurationsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		batch := make(map[string]map[string]configsvc.ItemState, len(payload.Configurations))
		for moduleID, items := range payload.Configurations {
			states := make(map[string]configsvc.ItemState, len(items))
			for itemID, item := range items {
				states[itemID] = configsvc.ItemState{Value: item.Value, Completed: item.Completed}
			}
			batch[moduleID] = states
		}

		result, err := svc.SaveModuleConfigurations(r.Context(), customerID, batch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type saveConfigurationsRequest struct {
	Configurations map[string]map[string]itemStateRequest `json:"configurations" validate:"required"`
}

type itemStateRequest struct {
	Value     string `json:"value"`
	Completed bool   `json:"completed"`
}
