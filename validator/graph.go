package validator

import (
	"github.com/warriorguo/flowedit/types"
)

// adjacency maps a node id to its neighbours in edge order.
type adjacency map[string][]string

func outgoing(edges []types.Edge) adjacency {
	adj := make(adjacency)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

func incoming(edges []types.Edge) adjacency {
	adj := make(adjacency)
	for _, e := range edges {
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}

/**
 * visit walks adj breadth first from the given vertex and returns every
 * vertex reached, the origin included. The visited set keeps cycles and
 * repeated edges from being walked twice.
 */
func visit(from string, adj adjacency) map[string]bool {
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		vertex := queue[0]
		queue = queue[1:]
		for _, next := range adj[vertex] {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

func nodesOfType(nodes []types.Node, typ types.NodeType) []types.Node {
	matched := make([]types.Node, 0, 1)
	for _, n := range nodes {
		if n.Type == typ {
			matched = append(matched, n)
		}
	}
	return matched
}
