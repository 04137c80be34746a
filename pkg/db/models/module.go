package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
)

// Module is a purchasable catalog entry. Catalog rows are seeded out of band
// and treated as read-only at runtime; prices are copied onto purchased
// modules at checkout so later catalog edits never touch paid orders.
type Module struct {
	ID           string               `gorm:"column:id;primaryKey"`
	Name         string               `gorm:"column:name;not null"`
	Category     enums.ModuleCategory `gorm:"column:category;type:text;not null"`
	MonthlyPrice decimal.Decimal      `gorm:"column:monthly_price;type:numeric(10,2);not null"`
	SetupPrice   decimal.Decimal      `gorm:"column:setup_price;type:numeric(10,2);not null"`
	Version      string               `gorm:"column:version;not null;default:'1.0.0'"`
	Active       bool                 `gorm:"column:active;not null;default:true"`
	Features     pq.StringArray       `gorm:"column:features;type:text[];default:ARRAY[]::text[]"`
	Items        []ModuleItem         `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
