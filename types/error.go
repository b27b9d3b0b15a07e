package types

import "fmt"

// ValidationError is a single problem found in the workflow. ID is derived
// from the node id and the check name, so it is stable across passes.
type ValidationError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	NodeID  string `json:"nodeId,omitempty"`
	Field   string `json:"field,omitempty"`
}

func (e ValidationError) String() string {
	if e.NodeID == "" {
		return e.Message
	}
	if e.Field == "" {
		return fmt.Sprintf("%s (node: %s)", e.Message, e.NodeID)
	}
	return fmt.Sprintf("%s (node: %s, field: %s)", e.Message, e.NodeID, e.Field)
}

type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  []ValidationError `json:"errors"`
}

func NewValidationResult(errs []ValidationError) ValidationResult {
	if errs == nil {
		errs = []ValidationError{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ErrorsForNode returns the errors scoped to nodeID, in result order.
func (r ValidationResult) ErrorsForNode(nodeID string) []ValidationError {
	errs := make([]ValidationError, 0)
	for _, e := range r.Errors {
		if e.NodeID == nodeID {
			errs = append(errs, e)
		}
	}
	return errs
}
