package dag

import "sync"

// Graph is a set of named nodes and the dependencies between them. All
// operations are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order lists node IDs in insertion order; it breaks ties whenever the
	// graph is traversed so results are reproducible.
	order []string
}

// node is un-exported so callers work with IDs only.
type node struct {
	id string
	// index is the node's position in Graph.order.
	index      int
	deps       map[string]*node
	dependents map[string]*node
}
