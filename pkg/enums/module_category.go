package enums

// ModuleCategory groups catalog modules in the configurator UI.
type ModuleCategory string

const (
	ModuleCategoryCommunication ModuleCategory = "communication"
	ModuleCategoryScheduling    ModuleCategory = "scheduling"
	ModuleCategoryFinance       ModuleCategory = "finance"
	ModuleCategoryMarketing     ModuleCategory = "marketing"
	ModuleCategorySupport       ModuleCategory = "support"
	ModuleCategoryAnalytics     ModuleCategory = "analytics"
)

// String implements fmt.Stringer.
func (m ModuleCategory) String() string {
	return string(m)
}
