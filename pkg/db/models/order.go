package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/types"
)

// Order is the aggregate root of a checkout: one row per purchase, owning the
// purchased module set. Created atomically with its modules, never partially.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string              `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID       string              `gorm:"column:customer_id;not null;index"`
	TotalAmount      decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaymentReference *string             `gorm:"column:payment_reference"`
	CustomerInfo     types.JSONMap       `gorm:"column:customer_info;type:jsonb;serializer:json"`
	Modules          []PurchasedModule   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
