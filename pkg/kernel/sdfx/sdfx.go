// Package sdfx is the default geometry kernel. Solids are signed distance
// functions from github.com/deadsy/sdfx and are only turned into
// triangles by marching cubes in ToMesh, so booleans never fail and
// cylinders are smooth whatever segment count is requested.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/laybell/pkg/kernel"
)

var _ kernel.Kernel = (*Kernel)(nil)

const (
	// DefaultMeshCells is the marching cubes resolution along the longest
	// side of a solid's bounding box.
	DefaultMeshCells = 200
	// MinMeshCells and MaxMeshCells bound the resolution derived from a
	// cell size.
	MinMeshCells = 16
	MaxMeshCells = 2000
)

type solid struct {
	name string
	s    sdf.SDF3
}

func (s *solid) Name() string { return s.name }

func (s *solid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	return [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}, [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithMeshCells fixes the resolution along the longest side. Values below
// 1 are ignored.
func WithMeshCells(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.cells = n
		}
	}
}

// WithCellSize sizes cells in millimetres instead, so small parts are not
// over-sampled and large ones keep their holes. Non-positive sizes are
// ignored.
func WithCellSize(mm float64) Option {
	return func(k *Kernel) {
		if mm > 0 && !math.IsInf(mm, 0) {
			k.cellSize = mm
		}
	}
}

// Kernel holds only its resolution settings and is safe for concurrent use.
type Kernel struct {
	cells    int
	cellSize float64
}

// New returns a kernel with DefaultMeshCells unless options say otherwise.
func New(opts ...Option) *Kernel {
	k := &Kernel{cells: DefaultMeshCells}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// MeshCells returns the fixed resolution used when no cell size is set.
func (k *Kernel) MeshCells() int { return k.cells }

// CellsFor returns the resolution ToMesh will use for s.
func (k *Kernel) CellsFor(s kernel.Solid) int {
	if k.cellSize == 0 {
		return k.cells
	}
	min, max := s.BoundingBox()
	longest := 0.0
	for a := 0; a < 3; a++ {
		longest = math.Max(longest, max[a]-min[a])
	}
	n := int(math.Ceil(longest / k.cellSize))
	return clamp(n, MinMeshCells, MaxMeshCells)
}

func clamp(n, lo, hi int) int {
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	}
	return n
}

func unwrap(s kernel.Solid) (*solid, error) {
	ss, ok := s.(*solid)
	if !ok {
		return nil, fmt.Errorf("sdfx: solid %q was not created by this kernel (%T)", s.Name(), s)
	}
	return ss, nil
}

// mustUnwrap is unwrap for the transforms, which cannot return an error.
func mustUnwrap(s kernel.Solid) *solid {
	ss, err := unwrap(s)
	if err != nil {
		panic(err)
	}
	return ss
}

func (k *Kernel) Box(name string, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.CheckBox(name, x, y, z); err != nil {
		return nil, err
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box %q: %w", name, err)
	}
	return &solid{name: name, s: s}, nil
}

// Cylinder checks segments like every kernel does but otherwise ignores it.
func (k *Kernel) Cylinder(name string, height, radius float64, segments int) (kernel.Solid, error) {
	if err := kernel.CheckCylinder(name, height, radius, segments); err != nil {
		return nil, err
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder %q: %w", name, err)
	}
	return &solid{name: name, s: s}, nil
}

func (k *Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	return boolean(a, b, func(sa, sb sdf.SDF3) sdf.SDF3 { return sdf.Union3D(sa, sb) })
}

func (k *Kernel) Difference(a, b kernel.Solid) (kernel.Solid, error) {
	return boolean(a, b, func(sa, sb sdf.SDF3) sdf.SDF3 { return sdf.Difference3D(sa, sb) })
}

func boolean(a, b kernel.Solid, op func(sdf.SDF3, sdf.SDF3) sdf.SDF3) (kernel.Solid, error) {
	sa, err := unwrap(a)
	if err != nil {
		return nil, err
	}
	sb, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	return &solid{name: sa.name, s: op(sa.s, sb.s)}, nil
}

func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ss := mustUnwrap(s)
	return &solid{name: ss.name, s: sdf.Transform3D(ss.s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))}
}

// Rotate applies X, then Y, then Z, in degrees.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ss := mustUnwrap(s)
	m := sdf.RotateZ(radians(z)).Mul(sdf.RotateY(radians(y))).Mul(sdf.RotateX(radians(x)))
	return &solid{name: ss.name, s: sdf.Transform3D(ss.s, m)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// ToMesh runs uniform marching cubes over s. The output repeats vertices per
// triangle and carries the facet normal on each of them.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ss, err := unwrap(s)
	if err != nil {
		return nil, err
	}
	triangles := render.ToTriangles(ss.s, render.NewMarchingCubesUniform(k.CellsFor(ss)))

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
		PartName: ss.name,
	}
	for _, tri := range triangles {
		n := tri.Normal()
		for _, v := range tri {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return m, nil
}
