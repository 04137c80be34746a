package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
)

// PurchasedModule snapshots one catalog module inside an order. Version and
// both prices are copied at purchase time. At most one row per
// (order, module) pair.
type PurchasedModule struct {
	ID             uuid.UUID                     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID                     `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_purchased_modules_order_module"`
	ModuleID       string                        `gorm:"column:module_id;not null;uniqueIndex:idx_purchased_modules_order_module"`
	ModuleVersion  string                        `gorm:"column:module_version;not null"`
	MonthlyPrice   decimal.Decimal               `gorm:"column:monthly_price;type:numeric(10,2);not null"`
	SetupPrice     decimal.Decimal               `gorm:"column:setup_price;type:numeric(10,2);not null"`
	Status         enums.PurchasedModuleStatus   `gorm:"column:status;type:text;not null;default:'active'"`
	Configurations []CustomerModuleConfiguration `gorm:"foreignKey:PurchasedModuleID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                     `gorm:"column:updated_at;autoUpdateTime"`
}
