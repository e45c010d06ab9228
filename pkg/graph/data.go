package graph

import (
	"fmt"
	"math"
)

// Vec3 is a point, offset or size in millimetres.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) at(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3) finite() bool {
	for i := 0; i < 3; i++ {
		if f := v.at(i); math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vec3 {
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

func (b Bounds) union(o Bounds) Bounds {
	return Bounds{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

func (b Bounds) translate(d Vec3) Bounds {
	return Bounds{
		Min: Vec3{b.Min.X + d.X, b.Min.Y + d.Y, b.Min.Z + d.Z},
		Max: Vec3{b.Max.X + d.X, b.Max.Y + d.Y, b.Max.Z + d.Z},
	}
}

// rotate bounds the eight rotated corners. Rotation is applied about X,
// then Y, then Z, matching the kernels.
func (b Bounds) rotate(deg Vec3) Bounds {
	r := rotation(deg)
	out := Bounds{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for i := 0; i < 8; i++ {
		c := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			c[0] = b.Max.X
		}
		if i&2 != 0 {
			c[1] = b.Max.Y
		}
		if i&4 != 0 {
			c[2] = b.Max.Z
		}
		var p [3]float64
		for row := 0; row < 3; row++ {
			p[row] = snap(r[row][0]*c[0] + r[row][1]*c[1] + r[row][2]*c[2])
		}
		out.Min = Vec3{math.Min(out.Min.X, p[0]), math.Min(out.Min.Y, p[1]), math.Min(out.Min.Z, p[2])}
		out.Max = Vec3{math.Max(out.Max.X, p[0]), math.Max(out.Max.Y, p[1]), math.Max(out.Max.Z, p[2])}
	}
	return out
}

// snap rounds away the floating point residue sin/cos leave at right angles.
func snap(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

// rotation returns Rz * Ry * Rx for angles in degrees.
func rotation(deg Vec3) [3][3]float64 {
	rad := math.Pi / 180
	sx, cx := math.Sincos(deg.X * rad)
	sy, cy := math.Sincos(deg.Y * rad)
	sz, cz := math.Sincos(deg.Z * rad)
	return [3][3]float64{
		{cz * cy, cz*sy*sx - sz*cx, cz*sy*cx + sz*sx},
		{sz * cy, sz*sy*sx + cz*cx, sz*sy*cx - cz*sx},
		{-sy, cy * sx, cy * cx},
	}
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// BoxData is a box centred on the origin.
type BoxData struct {
	Size Vec3 `json:"size"` // length x width x height in mm
}

func (BoxData) nodeData() {}

func (d BoxData) hash(h *hasher) { h.vec(d.Size) }

// CylinderData is a Z-axis cylinder centred on the origin.
type CylinderData struct {
	Height   float64 `json:"height"`
	Radius   float64 `json:"radius"`
	Segments int     `json:"segments"`
}

func (CylinderData) nodeData() {}

func (d CylinderData) hash(h *hasher) {
	h.float(d.Height)
	h.float(d.Radius)
	h.int(d.Segments)
}

// ---------------------------------------------------------------------------
// Placement
// ---------------------------------------------------------------------------

// TranslateData moves its child by Offset.
type TranslateData struct {
	Offset Vec3 `json:"offset"`
}

func (TranslateData) nodeData() {}

func (d TranslateData) hash(h *hasher) { h.vec(d.Offset) }

// RotateData rotates its child by Euler angles in degrees.
type RotateData struct {
	Degrees Vec3 `json:"degrees"`
}

func (RotateData) nodeData() {}

func (d RotateData) hash(h *hasher) { h.vec(d.Degrees) }
