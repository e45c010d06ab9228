// Package tessellate replays a recorded composition graph into a geometry
// kernel and turns the resulting solid into a triangle mesh.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/laybell/pkg/graph"
	"github.com/chazu/laybell/pkg/kernel"
)

// ErrEmptyMesh is returned when the kernel produces no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// EngineError attributes a kernel failure to the graph node that caused it.
type EngineError struct {
	Node graph.NodeID
	Kind graph.NodeKind
	Name string
	Err  error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("tessellate: %s %q (node %s): %v", e.Kind, e.Name, e.Node.Short(), e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Replay rebuilds the solid under the graph's root with the given kernel.
// Shared sub-trees are built once and reused, which is safe because
// kernel solids are immutable. The graph is never mutated.
func Replay(g *graph.CompositionGraph, k kernel.Modeler) (kernel.Solid, error) {
	if g == nil || g.RootNode() == nil {
		return nil, errors.New("tessellate: graph has no root")
	}
	r := &replayer{g: g, k: k, built: make(map[graph.NodeID]kernel.Solid, g.NodeCount())}
	return r.solid(g.Root)
}

type replayer struct {
	g     *graph.CompositionGraph
	k     kernel.Modeler
	built map[graph.NodeID]kernel.Solid
}

func (r *replayer) solid(id graph.NodeID) (kernel.Solid, error) {
	if s, ok := r.built[id]; ok {
		return s, nil
	}
	n := r.g.Get(id)
	if n == nil {
		return nil, fmt.Errorf("tessellate: node %s is missing", id.Short())
	}

	operands := make([]kernel.Solid, len(n.Children))
	for i, c := range n.Children {
		s, err := r.solid(c)
		if err != nil {
			return nil, err
		}
		operands[i] = s
	}

	s, err := r.apply(n, operands)
	if err != nil {
		return nil, &EngineError{Node: n.ID, Kind: n.Kind, Name: n.Name, Err: err}
	}
	r.built[id] = s
	return s, nil
}

// apply runs one node against the kernel. Kernel panics are returned as
// errors so they can be attributed to the node.
func (r *replayer) apply(n *graph.Node, ops []kernel.Solid) (s kernel.Solid, err error) {
	defer func() {
		if p := recover(); p != nil {
			s, err = nil, fmt.Errorf("kernel panic: %v", p)
		}
	}()

	if want := arity(n.Kind); len(ops) != want {
		return nil, fmt.Errorf("%s needs %d operand(s), got %d", n.Kind, want, len(ops))
	}

	switch d := n.Data.(type) {
	case graph.BoxData:
		return r.k.Box(n.Name, d.Size.X, d.Size.Y, d.Size.Z)
	case graph.CylinderData:
		return r.k.Cylinder(n.Name, d.Height, d.Radius, d.Segments)
	case graph.TranslateData:
		return r.k.Translate(ops[0], d.Offset.X, d.Offset.Y, d.Offset.Z), nil
	case graph.RotateData:
		return r.k.Rotate(ops[0], d.Degrees.X, d.Degrees.Y, d.Degrees.Z), nil
	}

	switch n.Kind {
	case graph.NodeUnion:
		return r.k.Union(ops[0], ops[1])
	case graph.NodeDifference:
		return r.k.Difference(ops[0], ops[1])
	default:
		return nil, fmt.Errorf("unsupported payload %T", n.Data)
	}
}

func arity(k graph.NodeKind) int {
	switch {
	case k.IsPrimitive():
		return 0
	case k == graph.NodeTranslate || k == graph.NodeRotate:
		return 1
	default:
		return 2
	}
}

// Mesh tessellates s and names the mesh after the component. An empty
// mesh is an error.
func Mesh(k kernel.Kernel, s kernel.Solid, name string) (*kernel.Mesh, error) {
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s: %w", name, err)
	}
	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("tessellate: %s: %w", name, ErrEmptyMesh)
	}
	m.PartName = name
	return m, nil
}
