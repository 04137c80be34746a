package enums

import "fmt"

// PurchasedModuleStatus tracks the lifecycle of a module owned by an order.
type PurchasedModuleStatus string

const (
	PurchasedModuleStatusActive    PurchasedModuleStatus = "active"
	PurchasedModuleStatusSuspended PurchasedModuleStatus = "suspended"
	PurchasedModuleStatusCancelled PurchasedModuleStatus = "cancelled"
)

var validPurchasedModuleStatuses = []PurchasedModuleStatus{
	PurchasedModuleStatusActive,
	PurchasedModuleStatusSuspended,
	PurchasedModuleStatusCancelled,
}

// String implements fmt.Stringer.
func (s PurchasedModuleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PurchasedModuleStatus.
func (s PurchasedModuleStatus) IsValid() bool {
	for _, candidate := range validPurchasedModuleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePurchasedModuleStatus converts raw input into a PurchasedModuleStatus.
func ParsePurchasedModuleStatus(value string) (PurchasedModuleStatus, error) {
	for _, candidate := range validPurchasedModuleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchased module status %q", value)
}
