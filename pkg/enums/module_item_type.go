package enums

import "fmt"

// ModuleItemType classifies a configuration item the customer fills in.
type ModuleItemType string

const (
	ModuleItemTypeText     ModuleItemType = "text"
	ModuleItemTypeURL      ModuleItemType = "url"
	ModuleItemTypeSecret   ModuleItemType = "secret"
	ModuleItemTypeConfig   ModuleItemType = "config"
	ModuleItemTypeCheckbox ModuleItemType = "checkbox"
)

var validModuleItemTypes = []ModuleItemType{
	ModuleItemTypeText,
	ModuleItemTypeURL,
	ModuleItemTypeSecret,
	ModuleItemTypeConfig,
	ModuleItemTypeCheckbox,
}

// String implements fmt.Stringer.
func (m ModuleItemType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ModuleItemType.
func (m ModuleItemType) IsValid() bool {
	for _, candidate := range validModuleItemTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModuleItemType converts raw input into a ModuleItemType.
func ParseModuleItemType(value string) (ModuleItemType, error) {
	for _, candidate := range validModuleItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid module item type %q", value)
}
