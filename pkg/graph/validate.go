package graph

import (
	"fmt"
	"strings"

	"github.com/chazu/laybell/pkg/kernel"
)

// ValidationError describes a single structural problem.
type ValidationError struct {
	NodeID  NodeID // which node has the problem (zero if graph-level)
	Name    string // the node's solid name
	Message string
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("node %s (%s): %s", e.NodeID.Short(), e.Name, e.Message)
}

// ValidationErrors is the error returned by Check.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "graph: " + strings.Join(msgs, "; ")
}

// Validate runs the structural checks and returns every finding. An empty
// slice means the graph can be replayed. It never mutates the graph.
func Validate(g *CompositionGraph) []ValidationError {
	if g.RootNode() == nil {
		return []ValidationError{{Message: "root node is missing"}}
	}
	var errs []ValidationError
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validatePayloads(g)...)
	errs = append(errs, validateDAG(g)...)
	return errs
}

// Check is Validate as an error.
func Check(g *CompositionGraph) error {
	if errs := Validate(g); len(errs) > 0 {
		return ValidationErrors(errs)
	}
	return nil
}

func validateReferences(g *CompositionGraph) []ValidationError {
	var errs []ValidationError
	for _, n := range g.Nodes {
		if want := n.Kind.arity(); len(n.Children) != want {
			errs = append(errs, ValidationError{n.ID, n.Name,
				fmt.Sprintf("%s takes %d operand(s), has %d", n.Kind, want, len(n.Children))})
		}
		for _, c := range n.Children {
			if g.Nodes[c] == nil {
				errs = append(errs, ValidationError{n.ID, n.Name,
					fmt.Sprintf("operand %s is missing", c.Short())})
			}
		}
	}
	return errs
}

func validatePayloads(g *CompositionGraph) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, format string, args ...any) {
		errs = append(errs, ValidationError{n.ID, n.Name, fmt.Sprintf(format, args...)})
	}
	for _, n := range g.Nodes {
		switch n.Kind {
		case NodeBox:
			d, ok := n.Data.(BoxData)
			if !ok {
				bad(n, "box without box payload")
				continue
			}
			if err := kernel.CheckBox(n.Name, d.Size.X, d.Size.Y, d.Size.Z); err != nil {
				bad(n, "%v", err)
			}
		case NodeCylinder:
			d, ok := n.Data.(CylinderData)
			if !ok {
				bad(n, "cylinder without cylinder payload")
				continue
			}
			if err := kernel.CheckCylinder(n.Name, d.Height, d.Radius, d.Segments); err != nil {
				bad(n, "%v", err)
			}
		case NodeTranslate:
			d, ok := n.Data.(TranslateData)
			if !ok {
				bad(n, "translate without offset")
			} else if !d.Offset.finite() {
				bad(n, "translate offset %v is not finite", d.Offset)
			}
		case NodeRotate:
			d, ok := n.Data.(RotateData)
			if !ok {
				bad(n, "rotate without angles")
			} else if !d.Degrees.finite() {
				bad(n, "rotation %v is not finite", d.Degrees)
			}
		case NodeUnion, NodeDifference:
			if n.Data != nil {
				bad(n, "%s carries an unexpected payload", n.Kind)
			}
		default:
			bad(n, "unknown node kind %d", int(n.Kind))
		}
	}
	return errs
}

// validateDAG reports cycles. Content-addressed construction cannot create
// one, but hand-built graphs can.
func validateDAG(g *CompositionGraph) []ValidationError {
	const (
		white = iota
		grey
		black
	)
	color := make(map[NodeID]int, len(g.Nodes))
	var errs []ValidationError
	var visit func(n *Node)
	visit = func(n *Node) {
		color[n.ID] = grey
		for _, c := range g.Children(n) {
			switch color[c.ID] {
			case grey:
				errs = append(errs, ValidationError{n.ID, n.Name,
					fmt.Sprintf("cycle through %s", c.ID.Short())})
			case white:
				visit(c)
			}
		}
		color[n.ID] = black
	}
	visit(g.RootNode())
	return errs
}
