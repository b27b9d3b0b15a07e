package runtime

import (
	"fmt"
	"strings"

	"github.com/warriorguo/flowedit/types"
)

func newGraphRenderer() *graphRenderer {
	return &graphRenderer{nil, &strings.Builder{}}
}

type graphRenderer struct {
	errors map[string][]types.ValidationError
	sb     *strings.Builder
}

func (d *graphRenderer) setResult(result *types.ValidationResult) {
	if result == nil {
		d.errors = nil
		return
	}
	d.errors = make(map[string][]types.ValidationError)
	for _, e := range result.Errors {
		if e.NodeID != "" {
			d.errors[e.NodeID] = append(d.errors[e.NodeID], e)
		}
	}
}

/**
 * generateDOT draws the graph in Graphviz DOT. With a validation result,
 * nodes carrying errors are filled red with the messages in the comment,
 * the others green; without one nodes are left unfilled.
 */
func (d *graphRenderer) generateDOT(nodes []types.Node, edges []types.Edge, result *types.ValidationResult) (string, error) {
	d.setResult(result)

	d.write("digraph D {")
	for _, n := range nodes {
		d.drawNode(n)
	}
	for _, e := range edges {
		d.drawEdge(e)
	}
	if result != nil {
		for _, e := range result.Errors {
			if e.NodeID == "" {
				d.write("// %s", formatNL(e.Message))
			}
		}
	}
	d.write("}")
	return d.sb.String(), nil
}

func nodeShape(typ types.NodeType) string {
	switch typ {
	case types.NodeTypeStart, types.NodeTypeEnd:
		return "ellipse"
	case types.NodeTypeConditional:
		return "diamond"
	}
	return "record"
}

func (d *graphRenderer) calcAttr(nodeID string) string {
	if d.errors == nil {
		return ""
	}
	errs, exists := d.errors[nodeID]
	if !exists {
		return " style=\"filled\" color=\"green\""
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return fmt.Sprintf(" style=\"filled\" color=\"red\" comment=\"%s\"",
		formatNL(addSlashes(strings.Join(messages, "\n"))))
}

func (d *graphRenderer) drawNode(n types.Node) {
	d.write("%s [label=%s shape=%s%s]", idString(n.ID),
		quoteString(types.NodeDisplayName(n)), quoteString(nodeShape(n.Type)), d.calcAttr(n.ID))
}

func (d *graphRenderer) drawEdge(e types.Edge) {
	switch e.SourceHandle {
	case types.RouteTrue:
		d.write("%s -> %s [label=\"True\"]", idString(e.Source), idString(e.Target))
	case types.RouteFalse:
		d.write("%s -> %s [label=\"False\"]", idString(e.Source), idString(e.Target))
	default:
		if e.Label != "" {
			d.write("%s -> %s [label=%s]", idString(e.Source), idString(e.Target), quoteString(e.Label))
			return
		}
		d.write("%s -> %s", idString(e.Source), idString(e.Target))
	}
}

func (d *graphRenderer) write(format string, s ...any) {
	d.sb.WriteString(fmt.Sprintf(format+"\n", s...))
}

var (
	slashesToken = []string{"\\", "\"", "'"}
)

func addSlashes(s string) string {
	for _, token := range slashesToken {
		s = strings.ReplaceAll(s, token, "\\"+token)
	}
	return s
}

func formatNL(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func quoteString(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

var idleChars = []string{" ", "'", "\"", "(", ")", "*", "&", "^", "%", "$", "#", "@", "!", "?", "<", ">", "[", "]", "{", "}", ".", "-"}

func idString(s string) string {
	for _, ch := range idleChars {
		s = strings.ReplaceAll(s, ch, "_")
	}
	return s
}
