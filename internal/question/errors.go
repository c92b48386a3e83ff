package question

import "fmt"

// ValidationError describes malformed input to a domain constructor.
type ValidationError struct {
	Field   string // Input that failed, e.g. "text", "tags"
	Message string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
