package deployment

import (
	"fmt"
	"strings"
)

// Modules below this completion percentage draw a warning. Warnings never
// block deployment; only missing required items do.
const completionWarningThreshold = 70

// ChecklistEntry is one configuration item as seen by the validator.
type ChecklistEntry struct {
	ItemID    string
	Title     string
	Required  bool
	Completed bool
	Value     string
}

// ModuleChecklist aggregates one purchased module's configuration state.
type ModuleChecklist struct {
	ModuleID          string
	Name              string
	CompletionPercent int
	Items             []ChecklistEntry
}

// ValidationResult reports checklist readiness for deployment.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateForDeployment checks every module's checklist. Each module with
// unmet required items contributes one error naming all of them, so the
// customer sees the complete outstanding list in a single pass. Modules under
// the completion threshold contribute warnings only.
func ValidateForDeployment(checklists []ModuleChecklist) ValidationResult {
	result := ValidationResult{}

	for _, module := range checklists {
		missing := make([]string, 0)
		for _, item := range module.Items {
			if item.Required && !item.Completed {
				missing = append(missing, item.Title)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"module %s is missing required configuration: %s",
				moduleLabel(module), strings.Join(missing, ", ")))
		}

		if module.CompletionPercent < completionWarningThreshold {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"module %s is only %d%% configured",
				moduleLabel(module), module.CompletionPercent))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func moduleLabel(module ModuleChecklist) string {
	if module.Name != "" {
		return module.Name
	}
	return module.ModuleID
}
