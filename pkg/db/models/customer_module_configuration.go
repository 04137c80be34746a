package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModuleConfiguration stores the customer-supplied value for one
// checklist item of a purchased module. Rows are upserted, never deleted.
// CompletedAt is set only while IsCompleted is true.
type CustomerModuleConfiguration struct {
	PurchasedModuleID uuid.UUID  `gorm:"column:purchased_module_id;type:uuid;primaryKey"`
	ItemID            string     `gorm:"column:item_id;primaryKey"`
	Value             string     `gorm:"column:value;not null;default:''"`
	IsCompleted       bool       `gorm:"column:is_completed;not null;default:false"`
	CompletedAt       *time.Time `gorm:"column:completed_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
