package dag

import "fmt"

// DetectCycles checks the graph for circular dependencies. It returns a
// non-nil error naming a node involved in the first cycle found.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with two node sets:
	// visiting holds nodes in the current recursion stack, visited holds
	// nodes already proven safe.
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		visiting[n.id] = true
		for _, dep := range n.deps {
			if visiting[dep.id] {
				return fmt.Errorf("cycle detected involving '%s'", dep.id)
			}
			if !visited[dep.id] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.id)
		visited[n.id] = true
		return nil
	}

	// Walk in insertion order so the reported node is deterministic.
	for _, id := range g.order {
		if !visited[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}
