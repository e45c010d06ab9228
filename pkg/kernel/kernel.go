// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide primitives, boolean operations
// and meshing behind this interface, so part generators never depend on a
// particular mesh engine.
package kernel

// Solid is an opaque, immutable handle to a kernel solid. Operators always
// return a new Solid and never modify their operands, so one Solid can be
// reused freely as the template for several placements.
type Solid interface {
	// Name is a human-readable tag used in diagnostics.
	Name() string
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Modeler builds solids. It is the part of a kernel that part generators
// use; it has no meshing capability so it can also be satisfied by a
// recorder that only captures the composition graph.
type Modeler interface {
	// Primitives, centered on the origin. Cylinders run along Z.
	Box(name string, x, y, z float64) (Solid, error)
	Cylinder(name string, height, radius float64, segments int) (Solid, error)

	// Boolean operations. The result carries the name of a.
	Union(a, b Solid) (Solid, error)
	Difference(a, b Solid) (Solid, error)

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, X then Y then Z
}

// Kernel is a Modeler that can also turn a solid into a triangle mesh.
type Kernel interface {
	Modeler

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
