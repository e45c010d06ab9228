package kernel

import (
	"errors"
	"math"
	"testing"
)

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name       string
		mesh       Mesh
		verts, tri int
		empty      bool
	}{
		{"zero", Mesh{}, 0, 0, true},
		{"single point", Mesh{Vertices: []float32{1, 2, 3}}, 1, 0, false},
		{"quad", Mesh{
			Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
			Indices:  []uint32{0, 1, 2, 2, 3, 0},
		}, 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.verts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.verts)
			}
			if got := tt.mesh.TriangleCount(); got != tt.tri {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.tri)
			}
			if got := tt.mesh.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

// cubeMesh returns an indexed, outward-wound cube with the given edge length
// and its minimum corner at the origin.
func cubeMesh(s float32) *Mesh {
	return &Mesh{
		Vertices: []float32{
			0, 0, 0, s, 0, 0, s, s, 0, 0, s, 0,
			0, 0, s, s, 0, s, s, s, s, 0, s, s,
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // bottom
			4, 5, 6, 4, 6, 7, // top
			0, 1, 5, 0, 5, 4, // front
			3, 7, 6, 3, 6, 2, // back
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

// soup expands an indexed mesh into one vertex per triangle corner, the
// layout marching cubes produces.
func soup(m *Mesh) *Mesh {
	out := &Mesh{}
	for i, idx := range m.Indices {
		v := m.Vertex(idx)
		out.Vertices = append(out.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
		out.Indices = append(out.Indices, uint32(i))
	}
	return out
}

func TestMeshBoundingBox(t *testing.T) {
	min, max := cubeMesh(2).BoundingBox()
	if min != [3]float64{0, 0, 0} || max != [3]float64{2, 2, 2} {
		t.Errorf("BoundingBox() = %v %v, want [0 0 0] [2 2 2]", min, max)
	}

	min, max = (&Mesh{}).BoundingBox()
	if min != [3]float64{} || max != [3]float64{} {
		t.Errorf("empty BoundingBox() = %v %v, want zero", min, max)
	}
}

func TestMeshVolume(t *testing.T) {
	if got := cubeMesh(2).Volume(); math.Abs(got-8) > 1e-9 {
		t.Errorf("Volume() = %f, want 8", got)
	}
	if got := soup(cubeMesh(3)).Volume(); math.Abs(got-27) > 1e-6 {
		t.Errorf("soup Volume() = %f, want 27", got)
	}
}

func TestMeshWeld(t *testing.T) {
	w := soup(cubeMesh(1)).Weld()
	if w.VertexCount() != 8 {
		t.Errorf("welded VertexCount() = %d, want 8", w.VertexCount())
	}
	if w.TriangleCount() != 12 {
		t.Errorf("welded TriangleCount() = %d, want 12", w.TriangleCount())
	}
}

func TestMeshWatertight(t *testing.T) {
	if !cubeMesh(1).Watertight() {
		t.Error("closed cube reported as not watertight")
	}
	if !soup(cubeMesh(1)).Watertight() {
		t.Error("triangle-soup cube reported as not watertight")
	}

	open := cubeMesh(1)
	open.Indices = open.Indices[6:] // drop the bottom face
	if open.Watertight() {
		t.Error("cube without bottom reported as watertight")
	}
	if (&Mesh{}).Watertight() {
		t.Error("empty mesh reported as watertight")
	}
}

// --- Degenerate input checks ---

func TestCheckBox(t *testing.T) {
	if err := CheckBox("plate", 10, 20, 5); err != nil {
		t.Fatalf("CheckBox() error = %v", err)
	}
	tests := []struct {
		name     string
		x, y, z  float64
		quantity string
	}{
		{"zero length", 0, 1, 1, "length"},
		{"negative width", 1, -1, 1, "width"},
		{"nan height", 1, 1, math.NaN(), "height"},
		{"inf length", math.Inf(1), 1, 1, "length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBox("plate", tt.x, tt.y, tt.z)
			var de *DegenerateError
			if !errors.As(err, &de) {
				t.Fatalf("CheckBox() error = %v, want *DegenerateError", err)
			}
			if de.Quantity != tt.quantity || de.Primitive != "plate" {
				t.Errorf("DegenerateError = %+v, want quantity %q on plate", de, tt.quantity)
			}
		})
	}
}

func TestCheckCylinder(t *testing.T) {
	if err := CheckCylinder("post", 40, 4, 32); err != nil {
		t.Fatalf("CheckCylinder() error = %v", err)
	}
	var de *DegenerateError
	if err := CheckCylinder("post", 40, 0, 32); !errors.As(err, &de) || de.Quantity != "radius" {
		t.Errorf("zero radius: error = %v, want radius DegenerateError", err)
	}
	if err := CheckCylinder("post", -1, 4, 32); !errors.As(err, &de) || de.Quantity != "height" {
		t.Errorf("negative height: error = %v, want height DegenerateError", err)
	}
	if err := CheckCylinder("post", 40, 4, 2); !errors.As(err, &de) || de.Quantity != "segments" {
		t.Errorf("two segments: error = %v, want segments DegenerateError", err)
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	name         string
	minBB, maxBB [3]float64
}

func (s *stubSolid) Name() string { return s.name }

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. Boxes and translations track bounds; booleans merge them.
type stubKernel struct {
	unions int
}

func (k *stubKernel) Box(name string, x, y, z float64) (Solid, error) {
	if err := CheckBox(name, x, y, z); err != nil {
		return nil, err
	}
	return &stubSolid{
		name:  name,
		minBB: [3]float64{-x / 2, -y / 2, -z / 2},
		maxBB: [3]float64{x / 2, y / 2, z / 2},
	}, nil
}

func (k *stubKernel) Cylinder(name string, height, radius float64, segments int) (Solid, error) {
	if err := CheckCylinder(name, height, radius, segments); err != nil {
		return nil, err
	}
	return &stubSolid{
		name:  name,
		minBB: [3]float64{-radius, -radius, -height / 2},
		maxBB: [3]float64{radius, radius, height / 2},
	}, nil
}

func (k *stubKernel) Union(a, b Solid) (Solid, error) {
	k.unions++
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	out := &stubSolid{name: a.Name()}
	for i := 0; i < 3; i++ {
		out.minBB[i] = math.Min(amin[i], bmin[i])
		out.maxBB[i] = math.Max(amax[i], bmax[i])
	}
	return out, nil
}

func (k *stubKernel) Difference(a, _ Solid) (Solid, error) { return a, nil }

func (k *stubKernel) Translate(s Solid, x, y, z float64) Solid {
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	out := &stubSolid{name: s.Name()}
	for i := 0; i < 3; i++ {
		out.minBB[i] = min[i] + d[i]
		out.maxBB[i] = max[i] + d[i]
	}
	return out
}

func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid { return s }

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelCentresBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, err := k.Box("b", 10, 20, 30)
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	min, max := s.BoundingBox()
	if min != [3]float64{-5, -10, -15} {
		t.Errorf("Box min = %v, want [-5 -10 -15]", min)
	}
	if max != [3]float64{5, 10, 15} {
		t.Errorf("Box max = %v, want [5 10 15]", max)
	}
}

func TestLinearPattern(t *testing.T) {
	k := &stubKernel{}
	hole, err := k.Cylinder("hole", 7, 1.6, 32)
	if err != nil {
		t.Fatalf("Cylinder() error = %v", err)
	}
	row, err := LinearPattern(k, hole, 15, 0, 0, 2)
	if err != nil {
		t.Fatalf("LinearPattern() error = %v", err)
	}
	if k.unions != 1 {
		t.Errorf("unions = %d, want 1", k.unions)
	}
	min, max := row.BoundingBox()
	if math.Abs(min[0]+1.6) > 1e-9 || math.Abs(max[0]-16.6) > 1e-9 {
		t.Errorf("pattern X bounds = [%f, %f], want [-1.6, 16.6]", min[0], max[0])
	}
	if row.Name() != "hole" {
		t.Errorf("pattern name = %q, want %q", row.Name(), "hole")
	}

	// The template is untouched by the pattern.
	hmin, hmax := hole.BoundingBox()
	if hmin[0] != -1.6 || hmax[0] != 1.6 {
		t.Errorf("template bounds changed to [%f, %f]", hmin[0], hmax[0])
	}
}

func TestLinearPatternSingleCopy(t *testing.T) {
	k := &stubKernel{}
	hole, _ := k.Cylinder("hole", 7, 1.6, 32)
	one, err := LinearPattern(k, hole, 15, 0, 0, 1)
	if err != nil {
		t.Fatalf("LinearPattern() error = %v", err)
	}
	if k.unions != 0 {
		t.Errorf("unions = %d, want 0", k.unions)
	}
	if one == nil {
		t.Fatal("LinearPattern() returned nil")
	}
}

func TestLinearPatternRejectsZeroCount(t *testing.T) {
	k := &stubKernel{}
	hole, _ := k.Cylinder("hole", 7, 1.6, 32)
	if _, err := LinearPattern(k, hole, 15, 0, 0, 0); err == nil {
		t.Fatal("LinearPattern() with count 0: error = nil, want error")
	}
}

func TestSmoothNormals(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 9, 9, 9},
		Indices:  []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
	}
	m.SmoothNormals()
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normals length %d, want %d", len(m.Normals), len(m.Vertices))
	}
	// The origin touches the three axis-aligned faces, each of unit double area.
	origin := m.Normals[0:3]
	for a := 0; a < 3; a++ {
		if math.Abs(float64(origin[a])+1/math.Sqrt(3)) > 1e-6 {
			t.Errorf("origin normal = %v, want -(1,1,1)/sqrt(3)", origin)
			break
		}
	}
	unused := m.Normals[12:15]
	if unused[0] != 0 || unused[1] != 0 || unused[2] != 0 {
		t.Errorf("unreferenced vertex normal = %v, want zero", unused)
	}
}
