package webhooks

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/validators"
	ordersvc "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

type paymentEventRequest struct {
	OrderID          uuid.UUID `json:"order_id" validate:"required,uuid4"`
	PaymentStatus    string    `json:"payment_status" validate:"required"`
	PaymentReference *string   `json:"payment_reference,omitempty"`
}

// PaymentCallback handles payment-status notifications from the upstream
// payment collaborator. Repeated notifications with the same status are
// acknowledged without writing a second transition.
func PaymentCallback(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload paymentEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := enums.PaymentStatus(payload.PaymentStatus)
		if !status.IsValid() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status"))
			return
		}

		if err := svc.UpdatePaymentStatus(ctx, payload.OrderID, status, payload.PaymentReference); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"order_id":       payload.OrderID.String(),
			"payment_status": status.String(),
		})
	}
}
