// Package validator checks workflow graphs built in the editor.
// Everything here is pure: problems are returned as data, never as errors.
package validator

import (
	"github.com/warriorguo/flowedit/types"
)

/**
 * ValidateWorkflow validates every node's fields, in node order, followed by
 * the structure of the whole graph. The result is recomputed from scratch on
 * each call and is stable for identical input.
 */
func ValidateWorkflow(nodes []types.Node, edges []types.Edge) types.ValidationResult {
	errs := make([]types.ValidationError, 0)
	for _, n := range nodes {
		errs = append(errs, ValidateNode(n)...)
	}
	errs = append(errs, ValidateWorkflowStructure(nodes, edges)...)
	return types.NewValidationResult(errs)
}
