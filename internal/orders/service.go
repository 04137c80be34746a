package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/catalog"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order ledger operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus, paymentReference *string) error
	GetUserPurchases(ctx context.Context, customerID string) (*PurchaseSummary, error)
}

type service struct {
	repo    Repository
	catalog catalog.Reader
	tx      txRunner
	logg    *logger.Logger
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, catalogReader catalog.Reader, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogReader == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		catalog: catalogReader,
		tx:      tx,
		logg:    logg,
	}, nil
}

// CreateOrder resolves the configurator selection, collapses duplicates and
// aliases, and persists the order with one purchased module per canonical id
// in a single transaction. Payment is confirmed upstream before checkout
// reaches this service, so the order is written as completed.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error) {
	customerID := strings.TrimSpace(input.CustomerID)
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.TotalAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must not be negative")
	}

	canonical := catalog.ResolveSelection(input.SelectedModuleIDs)
	modules, err := s.purchasableModules(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection contains no purchasable modules")
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:               uuid.New(),
		OrderNumber:      newOrderNumber(now),
		CustomerID:       customerID,
		TotalAmount:      input.TotalAmount,
		PaymentMethod:    input.PaymentMethod,
		PaymentStatus:    enums.PaymentStatusCompleted,
		PaymentReference: input.PaymentReference,
		CustomerInfo:     input.CustomerInfo,
	}

	purchased := make([]models.PurchasedModule, 0, len(modules))
	moduleIDs := make([]string, 0, len(modules))
	for _, module := range modules {
		purchased = append(purchased, models.PurchasedModule{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ModuleID:      module.ID,
			ModuleVersion: module.Version,
			MonthlyPrice:  module.MonthlyPrice,
			SetupPrice:    module.SetupPrice,
			Status:        enums.PurchasedModuleStatusActive,
		})
		moduleIDs = append(moduleIDs, module.ID)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		if err := repo.CreatePurchasedModules(ctx, purchased); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert purchased modules")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithOrderID(s.logg.WithCustomerID(ctx, customerID), order.ID.String())
	s.logg.Info(ctx, fmt.Sprintf("order %s created with %d modules", order.OrderNumber, len(moduleIDs)))

	return &OrderResult{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    customerID,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: order.PaymentStatus,
		ModuleIDs:     moduleIDs,
		CreatedAt:     order.CreatedAt,
	}, nil
}

// UpdatePaymentStatus applies an asynchronous payment callback. Re-applying
// the current status is a no-op success; any other change is allowed only
// from pending.
func (s *service) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus, paymentReference *string) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if order.PaymentStatus == status {
			return nil
		}
		if order.PaymentStatus != enums.PaymentStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment status can only change from pending")
		}

		updates := map[string]any{"payment_status": status}
		if paymentReference != nil {
			updates["payment_reference"] = *paymentReference
		}
		if err := repo.UpdateOrder(ctx, orderID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
		}
		return nil
	})
}

// GetUserPurchases returns the customer's most recent order joined with the
// full catalog checklist per purchased module. A customer with no orders gets
// (nil, nil), not an error.
func (s *service) GetUserPurchases(ctx context.Context, customerID string) (*PurchaseSummary, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	order, err := s.repo.FindLatestOrderByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest order")
	}

	moduleIDs := make([]string, 0, len(order.Modules))
	for _, pm := range order.Modules {
		moduleIDs = append(moduleIDs, pm.ModuleID)
	}

	catalogModules, err := s.catalog.FindModulesByIDs(ctx, moduleIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog modules")
	}
	moduleNames := make(map[string]string, len(catalogModules))
	for _, m := range catalogModules {
		moduleNames[m.ID] = m.Name
	}

	items, err := s.catalog.ListItemsForModules(ctx, moduleIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load module items")
	}
	itemsByModule := make(map[string][]models.ModuleItem, len(moduleIDs))
	for _, item := range items {
		itemsByModule[item.ModuleID] = append(itemsByModule[item.ModuleID], item)
	}

	summary := &PurchaseSummary{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
		Modules:       make([]PurchasedModuleSummary, 0, len(order.Modules)),
	}

	for _, pm := range order.Modules {
		stored := make(map[string]models.CustomerModuleConfiguration, len(pm.Configurations))
		for _, cfg := range pm.Configurations {
			stored[cfg.ItemID] = cfg
		}

		checklist := make([]ChecklistItem, 0, len(itemsByModule[pm.ModuleID]))
		for _, item := range itemsByModule[pm.ModuleID] {
			entry := ChecklistItem{
				ItemID:       item.ItemID,
				Title:        item.Title,
				Description:  item.Description,
				Type:         item.Type,
				Required:     item.Required,
				DisplayOrder: item.DisplayOrder,
				Value:        item.DefaultValue,
			}
			if cfg, ok := stored[item.ItemID]; ok {
				entry.Value = cfg.Value
				entry.IsCompleted = cfg.IsCompleted
				entry.CompletedAt = cfg.CompletedAt
			}
			checklist = append(checklist, entry)
		}

		summary.Modules = append(summary.Modules, PurchasedModuleSummary{
			PurchasedModuleID: pm.ID,
			ModuleID:          pm.ModuleID,
			ConfiguratorID:    catalog.ToConfiguratorID(pm.ModuleID),
			Name:              moduleNames[pm.ModuleID],
			ModuleVersion:     pm.ModuleVersion,
			MonthlyPrice:      pm.MonthlyPrice,
			SetupPrice:        pm.SetupPrice,
			Status:            pm.Status,
			Checklist:         checklist,
		})
	}

	return summary, nil
}

// purchasableModules keeps the canonical selection order while dropping ids
// with no active catalog row.
func (s *service) purchasableModules(ctx context.Context, canonical []string) ([]models.Module, error) {
	if len(canonical) == 0 {
		return nil, nil
	}
	rows, err := s.catalog.FindModulesByIDs(ctx, canonical)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog modules")
	}
	byID := make(map[string]models.Module, len(rows))
	for _, row := range rows {
		if row.Active {
			byID[row.ID] = row
		}
	}
	ordered := make([]models.Module, 0, len(canonical))
	for _, id := range canonical {
		if module, ok := byID[id]; ok {
			ordered = append(ordered, module)
		}
	}
	return ordered, nil
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("SB-%s-%s", now.Format("20060102"), suffix)
}
