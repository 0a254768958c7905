package ir

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Node is an IR element with a stable identity.
type Node interface {
	UUID() uuid.UUID
}

// NodeID implements [Node] through a pointer receiver. Embed it in IR types
// so that only pointers to them are nodes.
type NodeID struct {
	id uuid.UUID
}

// NewNodeID returns a [NodeID] for id, or a random one if id is [uuid.Nil].
func NewNodeID(id uuid.UUID) NodeID {
	if id == uuid.Nil {
		id = uuid.New()
	}

	return NodeID{id: id}
}

// UUID returns the identity of the node.
func (n *NodeID) UUID() uuid.UUID {
	return n.id
}

// Registry maps UUIDs to nodes. It is safe for concurrent use. Create
// instances with [NewRegistry], or use the zero value directly.
type Registry struct {
	nodes map[uuid.UUID]Node
	mu    sync.RWMutex
}

// NewRegistry creates a new [Registry].
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[uuid.UUID]Node),
	}
}

// Add registers n. Adding the same node twice is a no-op; adding a different
// node under an existing UUID fails with [ErrDuplicateNode].
func (r *Registry) Add(n Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nodes == nil {
		r.nodes = make(map[uuid.UUID]Node)
	}

	id := n.UUID()
	if prev, ok := r.nodes[id]; ok && prev != n {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}

	r.nodes[id] = n

	return nil
}

// Get returns the node registered under id.
func (r *Registry) Get(id uuid.UUID) (Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	return n, nil
}

// Remove unregisters id, if present.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.nodes, id)
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.nodes)
}
