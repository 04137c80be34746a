package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

// CreateOrderInput carries a confirmed checkout from the configurator.
type CreateOrderInput struct {
	CustomerID        string
	CustomerInfo      types.JSONMap
	SelectedModuleIDs []string
	TotalAmount       decimal.Decimal
	PaymentMethod     enums.PaymentMethod
	PaymentReference  *string
}

// OrderResult summarizes a persisted order for the checkout response.
type OrderResult struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    string              `json:"customer_id"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	ModuleIDs     []string            `json:"module_ids"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ChecklistItem is one configuration field of a purchased module merged with
// the customer's stored value. Value falls back to the catalog default when
// nothing has been saved yet.
type ChecklistItem struct {
	ItemID       string               `json:"item_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Type         enums.ModuleItemType `json:"type"`
	Required     bool                 `json:"required"`
	DisplayOrder int                  `json:"display_order"`
	Value        string               `json:"value"`
	IsCompleted  bool                 `json:"is_completed"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
}

// PurchasedModuleSummary joins a purchased module with its checklist.
type PurchasedModuleSummary struct {
	PurchasedModuleID uuid.UUID                   `json:"purchased_module_id"`
	ModuleID          string                      `json:"module_id"`
	ConfiguratorID    string                      `json:"configurator_id"`
	Name              string                      `json:"name"`
	ModuleVersion     string                      `json:"module_version"`
	MonthlyPrice      decimal.Decimal             `json:"monthly_price"`
	SetupPrice        decimal.Decimal             `json:"setup_price"`
	Status            enums.PurchasedModuleStatus `json:"status"`
	Checklist         []ChecklistItem             `json:"checklist"`
}

// PurchaseSummary is the customer's most recent order with the merged
// configuration checklist for every purchased module.
type PurchaseSummary struct {
	OrderID       uuid.UUID                `json:"order_id"`
	OrderNumber   string                   `json:"order_number"`
	CustomerID    string                   `json:"customer_id"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	PaymentStatus enums.PaymentStatus      `json:"payment_status"`
	CreatedAt     time.Time                `json:"created_at"`
	Modules       []PurchasedModuleSummary `json:"modules"`
}
