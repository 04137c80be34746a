package deployment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/automation"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

// Trigger is the outbound port to the automation platform.
type Trigger interface {
	Trigger(ctx context.Context, payload automation.TriggerPayload) (*automation.TriggerResult, error)
}

type purchaseReader interface {
	GetUserPurchases(ctx context.Context, customerID string) (*orders.PurchaseSummary, error)
}

// Result is returned to the caller after a successful trigger. Warnings from
// validation ride along as informational output.
type Result struct {
	DeploymentID string   `json:"deployment_id"`
	OrderID      string   `json:"order_id"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Service defines the deployment operations.
type Service interface {
	InitiateDeployment(ctx context.Context, customerID string, customerInfo types.JSONMap) (*Result, error)
}

type service struct {
	purchases purchaseReader
	trigger   Trigger
	logg      *logger.Logger
}

// NewService builds the deployment service with the required dependencies.
func NewService(purchases purchaseReader, trigger Trigger, logg *logger.Logger) (Service, error) {
	if purchases == nil {
		return nil, fmt.Errorf("purchase reader required")
	}
	if trigger == nil {
		return nil, fmt.Errorf("deployment trigger required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		purchases: purchases,
		trigger:   trigger,
		logg:      logg,
	}, nil
}

// InitiateDeployment reads the customer's checklist state from the ledger,
// validates it, and fires exactly one trigger call when valid. An invalid
// checklist fails before any network traffic; the trigger itself is never
// retried here, the customer retries explicitly.
func (s *service) InitiateDeployment(ctx context.Context, customerID string, customerInfo types.JSONMap) (*Result, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	summary, err := s.purchases.GetUserPurchases(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no purchases found for this customer")
	}

	checklists := buildChecklists(summary)
	validation := ValidateForDeployment(checklists)
	ctx = s.logg.WithCustomerID(ctx, customerID)
	if !validation.Valid {
		s.logg.Warn(ctx, fmt.Sprintf("deployment blocked: %d modules incomplete", len(validation.Errors)))
		return nil, pkgerrors.New(pkgerrors.CodeValidation, strings.Join(validation.Errors, "; ")).
			WithDetails(validation)
	}

	payload := automation.TriggerPayload{
		CustomerInfo:         buildCustomerInfo(customerID, customerInfo),
		ModuleConfigurations: buildModuleConfigurations(summary),
		Timestamp:            time.Now().UTC(),
	}

	ack, err := s.trigger.Trigger(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DeploymentID: ack.DeploymentID,
		OrderID:      ack.OrderID,
		Warnings:     validation.Warnings,
	}
	if result.OrderID == "" {
		result.OrderID = summary.OrderID.String()
	}

	s.logg.Info(ctx, fmt.Sprintf("deployment %s triggered for order %s", result.DeploymentID, result.OrderID))
	return result, nil
}

// buildChecklists shapes the merged purchase summary into validator input.
// Completion percent is completed items over total items, rounded; a module
// with no configurable items counts as fully configured.
func buildChecklists(summary *orders.PurchaseSummary) []ModuleChecklist {
	checklists := make([]ModuleChecklist, 0, len(summary.Modules))
	for _, module := range summary.Modules {
		entries := make([]ChecklistEntry, 0, len(module.Checklist))
		completed := 0
		for _, item := range module.Checklist {
			if item.IsCompleted {
				completed++
			}
			entries = append(entries, ChecklistEntry{
				ItemID:    item.ItemID,
				Title:     item.Title,
				Required:  item.Required,
				Completed: item.IsCompleted,
				Value:     item.Value,
			})
		}

		percent := 100
		if len(entries) > 0 {
			percent = int(math.Round(float64(completed) / float64(len(entries)) * 100))
		}

		checklists = append(checklists, ModuleChecklist{
			ModuleID:          module.ModuleID,
			Name:              module.Name,
			CompletionPercent: percent,
			Items:             entries,
		})
	}
	return checklists
}

func buildModuleConfigurations(summary *orders.PurchaseSummary) []automation.ModuleConfiguration {
	configs := make([]automation.ModuleConfiguration, 0, len(summary.Modules))
	for _, module := range summary.Modules {
		values := make(map[string]string, len(module.Checklist))
		for _, item := range module.Checklist {
			values[item.ItemID] = item.Value
		}
		configs = append(configs, automation.ModuleConfiguration{
			ModuleID: module.ModuleID,
			Values:   values,
		})
	}
	return configs
}

func buildCustomerInfo(customerID string, customerInfo types.JSONMap) map[string]any {
	info := make(map[string]any, len(customerInfo)+1)
	for k, v := range customerInfo {
		info[k] = v
	}
	if _, ok := info["customerId"]; !ok {
		info["customerId"] = customerID
	}
	return info
}
