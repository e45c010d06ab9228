package kernel

import (
	"fmt"
	"math"
)

// MinSegments is the smallest angular tessellation count a cylinder accepts.
const MinSegments = 3

// DegenerateError reports a primitive whose dimensions cannot describe a
// closed volume (zero, negative or non-finite).
type DegenerateError struct {
	Primitive string  // primitive name, e.g. "corner_hole"
	Quantity  string  // offending quantity, e.g. "radius"
	Value     float64 // offending value
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("degenerate primitive %q: %s is %g, must be positive", e.Primitive, e.Quantity, e.Value)
}

// CheckBox rejects box extents that are not finite and positive.
func CheckBox(name string, x, y, z float64) error {
	for _, q := range []struct {
		name string
		v    float64
	}{{"length", x}, {"width", y}, {"height", z}} {
		if err := checkPositive(name, q.name, q.v); err != nil {
			return err
		}
	}
	return nil
}

// CheckCylinder rejects cylinder dimensions that are not finite and
// positive, and segment counts below MinSegments.
func CheckCylinder(name string, height, radius float64, segments int) error {
	if err := checkPositive(name, "height", height); err != nil {
		return err
	}
	if err := checkPositive(name, "radius", radius); err != nil {
		return err
	}
	if segments < MinSegments {
		return &DegenerateError{Primitive: name, Quantity: "segments", Value: float64(segments)}
	}
	return nil
}

func checkPositive(name, quantity string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &DegenerateError{Primitive: name, Quantity: quantity, Value: v}
	}
	return nil
}
