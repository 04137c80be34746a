package models

import (
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/enums"
)

// ModuleItem is one typed configuration field the customer must fill in for a
// module. Item ids are unique within their module.
type ModuleItem struct {
	ModuleID     string               `gorm:"column:module_id;primaryKey"`
	ItemID       string               `gorm:"column:item_id;primaryKey"`
	Title        string               `gorm:"column:title;not null"`
	Description  string               `gorm:"column:description;not null;default:''"`
	Type         enums.ModuleItemType `gorm:"column:type;type:text;not null"`
	Required     bool                 `gorm:"column:required;not null;default:false"`
	DefaultValue string               `gorm:"column:default_value;not null;default:''"`
	DisplayOrder int                  `gorm:"column:display_order;not null;default:0"`
}
