package validator

import (
	"github.com/warriorguo/flowedit/types"
	"github.com/warriorguo/flowedit/utils"
)

/**
 * GetReachableFields returns the names of the form fields that can flow
 * into the target node: fields of every Form node that has a path to the
 * target. Names keep node order then field order, empty names are skipped
 * and a name shared by several fields is reported once.
 */
func GetReachableFields(targetNodeID string, nodes []types.Node, edges []types.Edge) []string {
	ancestors := visit(targetNodeID, incoming(edges))
	delete(ancestors, targetNodeID)

	names := make([]string, 0)
	for _, n := range nodes {
		if !ancestors[n.ID] {
			continue
		}
		form, ok := n.GetData().(*types.FormData)
		if !ok {
			continue
		}
		for _, field := range form.Fields {
			if field.Name != "" {
				names = append(names, field.Name)
			}
		}
	}
	return utils.UniqueSlice(names)
}
