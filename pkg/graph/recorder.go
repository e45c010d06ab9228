package graph

import (
	"fmt"

	"github.com/chazu/laybell/pkg/kernel"
)

var _ kernel.Modeler = (*Recorder)(nil)

// recorded is the kernel.Solid handed out by a Recorder.
type recorded struct {
	node *Node
}

func (s *recorded) Name() string { return s.node.Name }

func (s *recorded) BoundingBox() (min, max [3]float64) {
	b := s.node.Bounds
	return [3]float64{b.Min.X, b.Min.Y, b.Min.Z}, [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
}

// ID returns the content hash of the solid's node.
func (s *recorded) ID() NodeID { return s.node.ID }

// Recorder is a kernel.Modeler that builds no geometry. Every call records
// a node and returns a solid whose bounding box is computed analytically,
// so a part can be inspected and validated before the mesh engine runs.
//
// A Recorder is not safe for concurrent use; give each build its own.
type Recorder struct {
	nodes map[NodeID]*Node
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[NodeID]*Node)}
}

func (r *Recorder) add(kind NodeKind, name string, data NodeData, bounds Bounds, children ...NodeID) *recorded {
	id := contentID(kind, name, data, children)
	if n, ok := r.nodes[id]; ok {
		return &recorded{node: n}
	}
	n := &Node{ID: id, Kind: kind, Name: name, Children: children, Data: data, Bounds: bounds}
	r.nodes[id] = n
	return &recorded{node: n}
}

func (r *Recorder) own(s kernel.Solid) (*recorded, error) {
	rs, ok := s.(*recorded)
	if !ok {
		return nil, fmt.Errorf("graph: solid %q was not recorded by this recorder (%T)", s.Name(), s)
	}
	if r.nodes[rs.node.ID] != rs.node {
		return nil, fmt.Errorf("graph: solid %q belongs to another recorder", s.Name())
	}
	return rs, nil
}

// mustOwn is used by the placement operations, which have no error return.
func (r *Recorder) mustOwn(s kernel.Solid) *recorded {
	rs, err := r.own(s)
	if err != nil {
		panic(err)
	}
	return rs
}

// Box records a centred box.
func (r *Recorder) Box(name string, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.CheckBox(name, x, y, z); err != nil {
		return nil, err
	}
	b := Bounds{Min: Vec3{-x / 2, -y / 2, -z / 2}, Max: Vec3{x / 2, y / 2, z / 2}}
	return r.add(NodeBox, name, BoxData{Size: Vec3{x, y, z}}, b), nil
}

// Cylinder records a centred Z-axis cylinder.
func (r *Recorder) Cylinder(name string, height, radius float64, segments int) (kernel.Solid, error) {
	if err := kernel.CheckCylinder(name, height, radius, segments); err != nil {
		return nil, err
	}
	b := Bounds{Min: Vec3{-radius, -radius, -height / 2}, Max: Vec3{radius, radius, height / 2}}
	data := CylinderData{Height: height, Radius: radius, Segments: segments}
	return r.add(NodeCylinder, name, data, b), nil
}

// Union records a ∪ b. The result carries a's name.
func (r *Recorder) Union(a, b kernel.Solid) (kernel.Solid, error) {
	ra, err := r.own(a)
	if err != nil {
		return nil, err
	}
	rb, err := r.own(b)
	if err != nil {
		return nil, err
	}
	bounds := ra.node.Bounds.union(rb.node.Bounds)
	return r.add(NodeUnion, ra.node.Name, nil, bounds, ra.node.ID, rb.node.ID), nil
}

// Difference records a − b. The result keeps a's name and bounds.
func (r *Recorder) Difference(a, b kernel.Solid) (kernel.Solid, error) {
	ra, err := r.own(a)
	if err != nil {
		return nil, err
	}
	rb, err := r.own(b)
	if err != nil {
		return nil, err
	}
	return r.add(NodeDifference, ra.node.Name, nil, ra.node.Bounds, ra.node.ID, rb.node.ID), nil
}

// Translate records a placement by (x, y, z). It panics if s was not
// recorded by r.
func (r *Recorder) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	rs := r.mustOwn(s)
	d := Vec3{x, y, z}
	return r.add(NodeTranslate, rs.node.Name, TranslateData{Offset: d}, rs.node.Bounds.translate(d), rs.node.ID)
}

// Rotate records a rotation by Euler angles in degrees. It panics if s was
// not recorded by r.
func (r *Recorder) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	rs := r.mustOwn(s)
	deg := Vec3{x, y, z}
	return r.add(NodeRotate, rs.node.Name, RotateData{Degrees: deg}, rs.node.Bounds.rotate(deg), rs.node.ID)
}

// Graph extracts the graph reachable from root.
func (r *Recorder) Graph(root kernel.Solid) (*CompositionGraph, error) {
	rs, err := r.own(root)
	if err != nil {
		return nil, err
	}
	g := New()
	g.Root = rs.node.ID
	var collect func(id NodeID)
	collect = func(id NodeID) {
		if _, seen := g.Nodes[id]; seen {
			return
		}
		n := r.nodes[id]
		g.AddNode(n)
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(rs.node.ID)
	return g, nil
}

// IDOf returns the node ID of a recorded solid.
func IDOf(s kernel.Solid) (NodeID, bool) {
	rs, ok := s.(*recorded)
	if !ok {
		return NodeID{}, false
	}
	return rs.ID(), true
}
