package sdfx

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/laybell/pkg/kernel"
)

const testCells = 40

// must fails t when a kernel call returns an error. Call as must(t)(k.Box(...)).
func must(t *testing.T) func(kernel.Solid, error) kernel.Solid {
	return func(s kernel.Solid, err error) kernel.Solid {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
}

func assertBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for a := 0; a < 3; a++ {
		if math.Abs(min[a]-wantMin[a]) > 1e-6 || math.Abs(max[a]-wantMax[a]) > 1e-6 {
			t.Errorf("%s bounds[%d] = [%g, %g], want [%g, %g]", s.Name(), a, min[a], max[a], wantMin[a], wantMax[a])
		}
	}
}

func TestPrimitiveBounds(t *testing.T) {
	k := New()
	plate := must(t)(k.Box("plate", 100, 50, 25))
	post := must(t)(k.Cylinder("post", 40, 4, 32))

	tests := []struct {
		name     string
		solid    kernel.Solid
		min, max [3]float64
	}{
		{"box", plate, [3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5}},
		{"cylinder", post, [3]float64{-4, -4, -20}, [3]float64{4, 4, 20}},
		{"translate", k.Translate(plate, 100, 200, 300), [3]float64{50, 175, 287.5}, [3]float64{150, 225, 312.5}},
		// A Z pin turned 90 degrees about X lies along Y.
		{"rotate", k.Rotate(post, 90, 0, 0), [3]float64{-4, -20, -4}, [3]float64{4, 20, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBounds(t, tt.solid, tt.min, tt.max)
		})
	}

	// Operands never move.
	assertBounds(t, plate, [3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5})
}

func TestBooleans(t *testing.T) {
	k := New(WithMeshCells(testCells))
	block := must(t)(k.Box("block", 100, 100, 100))
	bore := must(t)(k.Cylinder("bore", 120, 20, 64))

	diff := must(t)(k.Difference(block, bore))
	if diff.Name() != "block" {
		t.Errorf("difference name = %q, want block", diff.Name())
	}
	assertBounds(t, diff, [3]float64{-50, -50, -50}, [3]float64{50, 50, 50})

	blockMesh, err := k.ToMesh(block)
	if err != nil {
		t.Fatal(err)
	}
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatal(err)
	}
	removed := blockMesh.Volume() - diffMesh.Volume()
	want := math.Pi * 20 * 20 * 100
	if math.Abs(removed-want)/want > 0.1 {
		t.Errorf("bore removed %g mm3, want ~%g", removed, want)
	}

	u := must(t)(k.Union(block, k.Translate(block, 30, 0, 0)))
	assertBounds(t, u, [3]float64{-50, -50, -50}, [3]float64{80, 50, 50})
}

func TestToMeshLayout(t *testing.T) {
	k := New(WithMeshCells(testCells))
	m, err := k.ToMesh(must(t)(k.Box("cube", 10, 10, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if m.PartName != "cube" {
		t.Errorf("PartName = %q", m.PartName)
	}
	if len(m.Normals) != len(m.Vertices) || len(m.Indices) != m.VertexCount() {
		t.Fatalf("layout: %d vertices, %d normals, %d indices", len(m.Vertices), len(m.Normals), len(m.Indices))
	}
	if v := m.Volume(); math.Abs(v-1000)/1000 > 0.05 {
		t.Errorf("volume = %g, want ~1000", v)
	}
}

func TestDeterminism(t *testing.T) {
	k := New(WithMeshCells(testCells))
	build := func() *kernel.Mesh {
		block := must(t)(k.Box("block", 30, 20, 10))
		hole := must(t)(k.Cylinder("hole", 12, 3, 32))
		m, err := k.ToMesh(must(t)(k.Difference(block, hole)))
		if err != nil {
			t.Fatal(err)
		}
		return m
	}
	a, b := build(), build()
	if a.TriangleCount() != b.TriangleCount() {
		t.Errorf("triangles %d vs %d", a.TriangleCount(), b.TriangleCount())
	}
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	if amin != bmin || amax != bmax {
		t.Errorf("bounds differ: %v %v vs %v %v", amin, amax, bmin, bmax)
	}
}

func TestDegenerateRejected(t *testing.T) {
	k := New()
	var de *kernel.DegenerateError
	if _, err := k.Box("wall", 0, 10, 10); !errors.As(err, &de) {
		t.Errorf("zero box: %v", err)
	}
	if _, err := k.Cylinder("bore", 10, -4, 32); !errors.As(err, &de) {
		t.Errorf("negative radius: %v", err)
	}
	if _, err := k.Cylinder("bore", 10, 4, 2); !errors.As(err, &de) || de.Quantity != "segments" {
		t.Errorf("two segments: %v", err)
	}
}

type foreign struct{}

func (foreign) Name() string                       { return "alien" }
func (foreign) BoundingBox() (min, max [3]float64) { return }

func TestForeignSolids(t *testing.T) {
	k := New()
	block := must(t)(k.Box("block", 1, 1, 1))
	if _, err := k.Union(block, foreign{}); err == nil || !strings.Contains(err.Error(), "alien") {
		t.Errorf("Union with foreign solid: %v", err)
	}
	if _, err := k.ToMesh(foreign{}); err == nil {
		t.Error("ToMesh accepted a foreign solid")
	}
	defer func() {
		if recover() == nil {
			t.Error("Translate of a foreign solid did not panic")
		}
	}()
	k.Translate(foreign{}, 1, 0, 0)
}

func TestResolution(t *testing.T) {
	if got := New().MeshCells(); got != DefaultMeshCells {
		t.Errorf("default = %d", got)
	}
	if got := New(WithMeshCells(0)).MeshCells(); got != DefaultMeshCells {
		t.Errorf("zero cells = %d, want default", got)
	}

	k := New(WithMeshCells(64), WithCellSize(0.5))
	tests := []struct {
		x    float64
		want int
	}{
		{200, 400},
		{40.2, 81},
		{2, MinMeshCells},
		{5000, MaxMeshCells},
	}
	for _, tt := range tests {
		if got := k.CellsFor(must(t)(k.Box("b", tt.x, 1, 1))); got != tt.want {
			t.Errorf("CellsFor(%g mm) = %d, want %d", tt.x, got, tt.want)
		}
	}
	if got := New(WithMeshCells(64), WithCellSize(-1)).CellsFor(must(t)(k.Box("b", 200, 1, 1))); got != 64 {
		t.Errorf("negative cell size should keep fixed cells, got %d", got)
	}
}
