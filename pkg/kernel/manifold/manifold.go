//go:build manifold

// Package manifold is a mesh kernel backed by the Manifold library
// (https://github.com/elalish/manifold) through its C API. Cylinders keep
// the requested facet count and booleans work on the triangles directly,
// so every result is a closed two-manifold mesh.
//
// Needs libmanifoldc under /usr/local. Build with -tags=manifold.
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/laybell/pkg/kernel"
)

var _ kernel.Kernel = Kernel{}

// OpError reports a Manifold operation that returned an invalid manifold.
type OpError struct {
	Op     string
	Name   string
	Status int
}

func (e *OpError) Error() string {
	return fmt.Sprintf("manifold: %s %q: status %d", e.Op, e.Name, e.Status)
}

type solid struct {
	name string
	ptr  *C.ManifoldManifold
}

func (s *solid) Name() string { return s.name }

func (s *solid) BoundingBox() (min, max [3]float64) {
	box := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(box)
	min = [3]float64{
		float64(C.manifold_box_min_x(box)), float64(C.manifold_box_min_y(box)), float64(C.manifold_box_min_z(box)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(box)), float64(C.manifold_box_max_y(box)), float64(C.manifold_box_max_z(box)),
	}
	return min, max
}

// adopt takes ownership of ptr. The C object is freed when the solid is
// garbage collected; solids are shared freely between parents.
func adopt(name string, ptr *C.ManifoldManifold) *solid {
	s := &solid{name: name, ptr: ptr}
	runtime.SetFinalizer(s, func(s *solid) { C.manifold_delete_manifold(s.ptr) })
	return s
}

func result(op, name string, ptr *C.ManifoldManifold) (kernel.Solid, error) {
	s := adopt(name, ptr)
	if st := C.manifold_status(ptr); st != C.MANIFOLD_NO_ERROR {
		return nil, &OpError{Op: op, Name: name, Status: int(st)}
	}
	return s, nil
}

func unwrap(s kernel.Solid) (*solid, error) {
	ms, ok := s.(*solid)
	if !ok {
		return nil, fmt.Errorf("manifold: solid %q was not created by this kernel (%T)", s.Name(), s)
	}
	return ms, nil
}

func mustUnwrap(s kernel.Solid) *solid {
	ms, err := unwrap(s)
	if err != nil {
		panic(err)
	}
	return ms
}

// Kernel holds no state; all state lives in the C objects behind solids.
type Kernel struct{}

// New returns the Manifold kernel.
func New() (kernel.Kernel, error) {
	return Kernel{}, nil
}

func (Kernel) Box(name string, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.CheckBox(name, x, y, z); err != nil {
		return nil, err
	}
	const centred = 1
	ptr := C.manifold_cube(C.manifold_alloc_manifold(), C.double(x), C.double(y), C.double(z), centred)
	return result("box", name, ptr)
}

func (Kernel) Cylinder(name string, height, radius float64, segments int) (kernel.Solid, error) {
	if err := kernel.CheckCylinder(name, height, radius, segments); err != nil {
		return nil, err
	}
	const centred = 1
	ptr := C.manifold_cylinder(C.manifold_alloc_manifold(),
		C.double(height), C.double(radius), C.double(radius), C.int(segments), centred)
	return result("cylinder", name, ptr)
}

type booleanOp func(alloc, a, b *C.ManifoldManifold) *C.ManifoldManifold

func boolean(op string, a, b kernel.Solid, fn booleanOp) (kernel.Solid, error) {
	ma, err := unwrap(a)
	if err != nil {
		return nil, err
	}
	mb, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	return result(op, ma.name, fn(C.manifold_alloc_manifold(), ma.ptr, mb.ptr))
}

func (Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	return boolean("union", a, b, func(alloc, x, y *C.ManifoldManifold) *C.ManifoldManifold {
		return C.manifold_union(alloc, x, y)
	})
}

func (Kernel) Difference(a, b kernel.Solid) (kernel.Solid, error) {
	return boolean("difference", a, b, func(alloc, x, y *C.ManifoldManifold) *C.ManifoldManifold {
		return C.manifold_difference(alloc, x, y)
	})
}

func (Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ms := mustUnwrap(s)
	return adopt(ms.name, C.manifold_translate(C.manifold_alloc_manifold(), ms.ptr,
		C.double(x), C.double(y), C.double(z)))
}

// Rotate takes degrees; Manifold applies X, then Y, then Z.
func (Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ms := mustUnwrap(s)
	return adopt(ms.name, C.manifold_rotate(C.manifold_alloc_manifold(), ms.ptr,
		C.double(x), C.double(y), C.double(z)))
}

// ToMesh copies positions and triangles out of Manifold's MeshGL. Vertices
// are already shared, so the mesh needs no welding; normals are computed
// from the winding.
func (Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms, err := unwrap(s)
	if err != nil {
		return nil, err
	}
	gl := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), ms.ptr)
	defer C.manifold_delete_meshgl(gl)

	nVert := int(C.manifold_meshgl_num_vert(gl))
	nTri := int(C.manifold_meshgl_num_tri(gl))
	nProp := int(C.manifold_meshgl_num_prop(gl))
	m := &kernel.Mesh{PartName: ms.name}
	if nVert == 0 || nTri == 0 {
		return m, nil
	}
	if nProp < 3 {
		return nil, fmt.Errorf("manifold: %q: mesh has %d vertex properties, need 3", ms.name, nProp)
	}

	props := make([]float32, nVert*nProp)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), gl)
	m.Indices = make([]uint32, nTri*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&m.Indices[0])), gl)

	// Positions are the first three properties of each vertex.
	m.Vertices = make([]float32, nVert*3)
	for i := 0; i < nVert; i++ {
		copy(m.Vertices[i*3:i*3+3], props[i*nProp:i*nProp+3])
	}
	m.SmoothNormals()
	return m, nil
}
