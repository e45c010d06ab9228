package parts

import "github.com/chazu/laybell/pkg/kernel"

// builder wraps a Modeler with a sticky error so a generator can place a
// run of primitives and check once. After the first failure every method
// returns nil and leaves the error in place.
type builder struct {
	m   kernel.Modeler
	err error
}

func (b *builder) box(name string, x, y, z float64) kernel.Solid {
	if b.err != nil {
		return nil
	}
	s, err := b.m.Box(name, x, y, z)
	b.err = err
	return s
}

func (b *builder) cylinder(name string, height, radius float64, segments int) kernel.Solid {
	if b.err != nil {
		return nil
	}
	s, err := b.m.Cylinder(name, height, radius, segments)
	b.err = err
	return s
}

func (b *builder) hole(name string, diameter, length float64) kernel.Solid {
	if b.err != nil {
		return nil
	}
	s, err := hole(b.m, name, diameter, length)
	b.err = err
	return s
}

func (b *builder) at(s kernel.Solid, x, y, z float64) kernel.Solid {
	if b.err != nil {
		return nil
	}
	return b.m.Translate(s, x, y, z)
}

func (b *builder) rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	if b.err != nil {
		return nil
	}
	return b.m.Rotate(s, x, y, z)
}

func (b *builder) pattern(s kernel.Solid, dx, dy, dz float64, count int) kernel.Solid {
	if b.err != nil {
		return nil
	}
	p, err := kernel.LinearPattern(b.m, s, dx, dy, dz, count)
	b.err = err
	return p
}

// plan returns the collected features, or the first error.
func (b *builder) plan(additive, cuts []kernel.Solid) (*Plan, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Plan{Additive: additive, Cuts: cuts}, nil
}
