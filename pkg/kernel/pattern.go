package kernel

import "fmt"

// LinearPattern returns the union of count copies of s, the i-th copy
// translated by i*(dx, dy, dz). The first copy sits where s is.
func LinearPattern(m Modeler, s Solid, dx, dy, dz float64, count int) (Solid, error) {
	if count < 1 {
		return nil, fmt.Errorf("kernel: linear pattern of %q needs at least one copy, got %d", s.Name(), count)
	}
	out := m.Translate(s, 0, 0, 0)
	for i := 1; i < count; i++ {
		f := float64(i)
		next := m.Translate(s, f*dx, f*dy, f*dz)
		var err error
		out, err = m.Union(out, next)
		if err != nil {
			return nil, fmt.Errorf("kernel: linear pattern of %q, copy %d: %w", s.Name(), i, err)
		}
	}
	return out, nil
}
