package dag

import (
	"fmt"
	"sort"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does nothing
// and keeps its original position in the insertion order.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		index:      len(g.order),
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// AddEdge records that toID depends on fromID. Both nodes must exist and
// must differ.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// Dependencies returns the IDs the given node depends on, in insertion order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(sorted(n.deps)), nil
}

// Dependents returns the IDs that depend on the given node, in insertion
// order.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(sorted(n.dependents)), nil
}

// Closure returns the given nodes and everything they depend on,
// transitively.
func (g *Graph) Closure(roots ...string) (map[string]bool, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seen := make(map[string]bool)
	stack := make([]*node, 0, len(roots))
	for _, id := range roots {
		n, ok := g.nodes[id]
		if !ok {
			return nil, fmt.Errorf("node not found: %s", id)
		}
		stack = append(stack, n)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n.id] {
			continue
		}
		seen[n.id] = true
		for _, dep := range n.deps {
			stack = append(stack, dep)
		}
	}
	return seen, nil
}

// DetectCycles returns an error naming the cycle if the graph has one.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully explored, not on a cycle. stack: current DFS path.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), n.id)
			return fmt.Errorf("cycle detected involving node '%s': %s", n.id, strings.Join(path, " -> "))
		}

		onStack[n.id] = true
		stack = append(stack, n.id)
		for _, dependent := range sorted(n.dependents) {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder returns every node such that each one comes after all of
// its dependencies. Among nodes that are ready at the same time the one added
// first wins, so the order is deterministic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	remaining := make(map[string]int, len(g.nodes))
	var ready []*node
	for _, id := range g.order {
		n := g.nodes[id]
		remaining[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, n)
		}
	}

	out := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].index < ready[j].index })
		n := ready[0]
		ready = ready[1:]
		out = append(out, n.id)
		for _, d := range sorted(n.dependents) {
			remaining[d.id]--
			if remaining[d.id] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(out) != len(g.nodes) {
		for _, id := range g.order {
			if remaining[id] > 0 {
				return nil, fmt.Errorf("cycle detected involving node '%s'", id)
			}
		}
	}
	return out, nil
}

func sorted(m map[string]*node) []*node {
	out := make([]*node, 0, len(m))
	for _, n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func ids(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}
