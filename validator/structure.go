package validator

import (
	"fmt"

	"github.com/warriorguo/flowedit/types"
)

/**
 * ValidateWorkflowStructure checks the shape of the graph: Start/End counts,
 * conditional routes and, once there is exactly one Start and one End,
 * connectivity from Start. All checks run, problems accumulate.
 */
func ValidateWorkflowStructure(nodes []types.Node, edges []types.Edge) []types.ValidationError {
	errs := make([]types.ValidationError, 0)

	starts := nodesOfType(nodes, types.NodeTypeStart)
	ends := nodesOfType(nodes, types.NodeTypeEnd)
	workNodes := len(nodes) - len(starts) - len(ends)

	if len(starts) == 1 && len(ends) == 1 && workNodes == 0 {
		errs = append(errs, workflowError("no-work-nodes",
			"Workflow must contain at least one Form, API or Conditional block between Start and End"))
	}

	errs = append(errs, checkCount(len(starts), "start", "Start")...)
	errs = append(errs, checkCount(len(ends), "end", "End")...)

	for _, n := range nodesOfType(nodes, types.NodeTypeConditional) {
		errs = append(errs, checkRoutes(n, edges)...)
	}

	// reachability from Start is undefined until there is exactly one of each
	if len(starts) == 1 && len(ends) == 1 {
		errs = append(errs, checkConnectivity(nodes, edges, starts[0], ends[0])...)
	}
	return errs
}

func checkCount(count int, check, name string) []types.ValidationError {
	switch {
	case count == 0:
		return []types.ValidationError{workflowError("missing-"+check,
			fmt.Sprintf("Workflow has no %s block", name))}
	case count > 1:
		return []types.ValidationError{workflowError("multiple-"+check,
			fmt.Sprintf("Workflow has %d %s blocks, must have exactly one", count, name))}
	}
	return nil
}

func checkRoutes(n types.Node, edges []types.Edge) []types.ValidationError {
	hasTrue, hasFalse := false, false
	for _, e := range edges {
		if e.Source != n.ID {
			continue
		}
		switch e.SourceHandle {
		case types.RouteTrue:
			hasTrue = true
		case types.RouteFalse:
			hasFalse = true
		}
	}

	errs := make([]types.ValidationError, 0)
	name := types.NodeDisplayName(n)
	if !hasTrue {
		errs = append(errs, checkError(n.ID, "missing-true-route",
			fmt.Sprintf("%q is missing a TRUE route connection", name)))
	}
	if !hasFalse {
		errs = append(errs, checkError(n.ID, "missing-false-route",
			fmt.Sprintf("%q is missing a FALSE route connection", name)))
	}
	return errs
}

func checkConnectivity(nodes []types.Node, edges []types.Edge, start, end types.Node) []types.ValidationError {
	errs := make([]types.ValidationError, 0)
	out := outgoing(edges)

	if len(nodes) > 1 {
		if len(out[start.ID]) == 0 {
			errs = append(errs, checkError(start.ID, "no-outgoing", "Start has no outgoing connections"))
		}
		if len(incoming(edges)[end.ID]) == 0 {
			errs = append(errs, checkError(end.ID, "no-incoming", "End has no incoming connections"))
		}
	}

	reachable := visit(start.ID, out)
	for _, n := range nodes {
		if n.ID == start.ID || reachable[n.ID] {
			continue
		}
		errs = append(errs, checkError(n.ID, "unreachable",
			fmt.Sprintf("%q is not reachable from Start", types.NodeDisplayName(n))))
	}
	return errs
}

func workflowError(check, message string) types.ValidationError {
	return types.ValidationError{ID: "workflow-" + check, Message: message}
}

func checkError(nodeID, check, message string) types.ValidationError {
	return types.ValidationError{ID: nodeID + "-" + check, Message: message, NodeID: nodeID}
}
