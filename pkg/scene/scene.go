package scene

// Scene is the immutable tree produced by a Builder.
type Scene struct {
	root      *Node
	nodes     map[NodeID]*Node
	nameIndex map[string]NodeID // group name -> ID
}

// Root returns the root group.
func (s *Scene) Root() *Node { return s.root }

// Get returns the node with the given path, or nil.
func (s *Scene) Get(id NodeID) *Node { return s.nodes[id] }

// Lookup returns the group with the given name, or nil. Group names are
// the scene's stable identifiers.
func (s *Scene) Lookup(name string) *Node {
	id, ok := s.nameIndex[name]
	if !ok {
		return nil
	}
	return s.nodes[id]
}

// Groups returns every group below the root in depth-first order.
func (s *Scene) Groups() []*Node {
	var out []*Node
	s.Walk(func(n *Node, depth int) bool {
		if n.kind == NodeGroup && depth > 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Solids returns every leaf in depth-first order.
func (s *Scene) Solids() []*Node {
	var out []*Node
	s.Walk(func(n *Node, _ int) bool {
		if n.kind == NodeSolid {
			out = append(out, n)
		}
		return true
	})
	return out
}

// NodeCount returns the total number of nodes, including the root.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// Walk visits nodes depth-first, parents before children. Returning false
// from fn skips the node's children.
func (s *Scene) Walk(fn func(n *Node, depth int) bool) {
	if s.root == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(s.root, 0)
}
