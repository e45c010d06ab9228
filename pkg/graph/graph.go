package graph

// CompositionGraph is the DAG reachable from one part's root solid.
// Identical sub-trees collapse onto one node because IDs are content hashes,
// so a pattern template shared by several placements appears once.
type CompositionGraph struct {
	Nodes map[NodeID]*Node `json:"nodes"`
	Root  NodeID           `json:"root"`
}

// New creates an empty CompositionGraph.
func New() *CompositionGraph {
	return &CompositionGraph{Nodes: make(map[NodeID]*Node)}
}

// AddNode adds a node to the graph. Adding a node whose ID is already
// present is a no-op.
func (g *CompositionGraph) AddNode(n *Node) {
	if _, ok := g.Nodes[n.ID]; ok {
		return
	}
	g.Nodes[n.ID] = n
}

// Get returns the node with the given ID, or nil.
func (g *CompositionGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// RootNode returns the root node, or nil for an empty graph.
func (g *CompositionGraph) RootNode() *Node {
	return g.Nodes[g.Root]
}

// Children returns the child nodes of the given node in operand order.
// Missing children are skipped.
func (g *CompositionGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the number of distinct nodes.
func (g *CompositionGraph) NodeCount() int {
	return len(g.Nodes)
}

// Walk visits the tree under id depth-first in operand order. Shared
// sub-trees are visited once per reference. Returning false from fn skips
// the node's children.
func (g *CompositionGraph) Walk(id NodeID, fn func(n *Node, depth int) bool) {
	g.walk(id, 0, fn)
}

func (g *CompositionGraph) walk(id NodeID, depth int, fn func(*Node, int) bool) {
	n := g.Nodes[id]
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		g.walk(c, depth+1, fn)
	}
}

// Blank returns the additive operand of the root's top-level difference
// chain: for (a - b) - c it returns a. A root that is not a difference is
// its own blank.
func (g *CompositionGraph) Blank() *Node {
	n := g.RootNode()
	for n != nil && n.Kind == NodeDifference && len(n.Children) == 2 {
		n = g.Nodes[n.Children[0]]
	}
	return n
}

// Cuts returns the subtracted operands of the root's top-level difference
// chain in the order they are applied.
func (g *CompositionGraph) Cuts() []*Node {
	var cuts []*Node
	n := g.RootNode()
	for n != nil && n.Kind == NodeDifference && len(n.Children) == 2 {
		if c := g.Nodes[n.Children[1]]; c != nil {
			cuts = append(cuts, c)
		}
		n = g.Nodes[n.Children[0]]
	}
	for i, j := 0, len(cuts)-1; i < j; i, j = i+1, j-1 {
		cuts[i], cuts[j] = cuts[j], cuts[i]
	}
	return cuts
}

// CountKind counts the nodes of the given kind in the tree under id,
// counting shared sub-trees once per reference. Counting cylinders under a
// cut gives the number of distinct hole volumes it removes.
func (g *CompositionGraph) CountKind(id NodeID, kind NodeKind) int {
	count := 0
	g.Walk(id, func(n *Node, _ int) bool {
		if n.Kind == kind {
			count++
		}
		return true
	})
	return count
}
