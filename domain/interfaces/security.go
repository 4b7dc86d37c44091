package interfaces

import "page_automation/domain/entities"

// Redactor masks values that must not reach the logs
type Redactor interface {
	// RedactValue returns the value to log for the given action
	RedactValue(action entities.Action) string

	// IsSensitive reports whether the action targets a sensitive field
	IsSensitive(action entities.Action) bool
}
