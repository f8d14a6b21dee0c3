package dag

import "fmt"

// TopologicalOrder returns all node IDs ordered so that every node appears
// after all of its dependencies. The order is stable: among ready nodes the
// one inserted first is emitted first, so repeated calls on the same graph
// return identical slices.
func (g *Graph) TopologicalOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	sorted := make([]string, 0, len(g.nodes))
	emitted := make(map[string]bool, len(g.nodes))

	// Kahn's algorithm, scanning the insertion-order slice each round
	// instead of keeping a queue. Quadratic, but pipeline graphs are tiny
	// and the scan keeps tie-breaking deterministic.
	for len(sorted) < len(g.nodes) {
		progressed := false
		for _, id := range g.order {
			if emitted[id] || indegree[id] != 0 {
				continue
			}
			emitted[id] = true
			sorted = append(sorted, id)
			for depID := range g.nodes[id].dependents {
				indegree[depID]--
			}
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("graph is not acyclic: %d of %d nodes unreachable from sources", len(g.nodes)-len(sorted), len(g.nodes))
		}
	}

	return sorted, nil
}
