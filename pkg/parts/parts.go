// Package parts holds the six fixture part generators. Each generator is a
// pure function of the shared configuration: it derives local dimensions,
// places primitives, unions the additive features into a blank and then
// subtracts every cut in a fixed order.
package parts

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

// Component names. They double as output file stems.
const (
	MainFrame          = "main_frame"
	PeelPlate          = "peel_plate"
	VialCradle         = "vial_cradle"
	SpoolHolder        = "spool_holder"
	DancerArm          = "dancer_arm"
	GuideRollerBracket = "guide_roller_bracket"
)

// Tessellation counts for cylinders.
const (
	holeSegments = 32
	hubSegments  = 64
)

// holeExtra is how much taller than the material a through-hole cylinder
// is, so both faces are cut cleanly.
const holeExtra = 2.0

// PlanFunc derives and places a part's features without composing them.
type PlanFunc func(m kernel.Modeler, cfg *config.Config) (*Plan, error)

// Component pairs a part name with its generator.
type Component struct {
	Name  string
	Title string
	Plan  PlanFunc
}

// Build plans the part and composes it in the declared cut order.
func (c Component) Build(m kernel.Modeler, cfg *config.Config) (kernel.Solid, error) {
	p, err := c.Plan(m, cfg)
	if err != nil {
		return nil, err
	}
	return p.Compose(m)
}

// File returns the output file name for the given extension (".stl").
func (c Component) File(ext string) string {
	return c.Name + ext
}

var all = []Component{
	{Name: MainFrame, Title: "Main frame", Plan: planFrame},
	{Name: PeelPlate, Title: "Peel plate", Plan: planPeelPlate},
	{Name: VialCradle, Title: "Vial cradle", Plan: planVialCradle},
	{Name: SpoolHolder, Title: "Spool holder", Plan: planSpoolHolder},
	{Name: DancerArm, Title: "Dancer arm", Plan: planDancerArm},
	{Name: GuideRollerBracket, Title: "Guide roller bracket", Plan: planGuideRollerBracket},
}

// All returns the components in build order.
func All() []Component {
	return append([]Component(nil), all...)
}

// Lookup finds a component by name.
func Lookup(name string) (Component, bool) {
	for _, c := range all {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Select returns the named components in build order, or all of them when
// names is empty.
func Select(names []string) ([]Component, error) {
	if len(names) == 0 {
		return All(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			return nil, fmt.Errorf("parts: unknown component %q (known: %s)", n, strings.Join(Names(), ", "))
		}
		want[n] = true
	}
	var out []Component
	for _, c := range all {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Names lists the component names in build order.
func Names() []string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// Plan is a part's placed features before composition.
type Plan struct {
	Additive []kernel.Solid
	Cuts     []kernel.Solid
}

// Compose unions the additive features and subtracts the cuts in order.
func (p *Plan) Compose(m kernel.Modeler) (kernel.Solid, error) {
	return p.ComposeOrder(m, nil)
}

// ComposeOrder is Compose with the cuts applied in the given permutation
// of their indices. A nil order keeps the declared order.
func (p *Plan) ComposeOrder(m kernel.Modeler, order []int) (kernel.Solid, error) {
	if len(p.Additive) == 0 {
		return nil, fmt.Errorf("parts: plan has no additive features")
	}
	if order == nil {
		order = make([]int, len(p.Cuts))
		for i := range order {
			order[i] = i
		}
	}
	if len(order) != len(p.Cuts) {
		return nil, fmt.Errorf("parts: cut order has %d entries for %d cuts", len(order), len(p.Cuts))
	}

	blank := p.Additive[0]
	for _, s := range p.Additive[1:] {
		u, err := m.Union(blank, s)
		if err != nil {
			return nil, fmt.Errorf("parts: union %q + %q: %w", blank.Name(), s.Name(), err)
		}
		blank = u
	}

	used := make([]bool, len(p.Cuts))
	for _, i := range order {
		if i < 0 || i >= len(p.Cuts) || used[i] {
			return nil, fmt.Errorf("parts: cut order %v is not a permutation", order)
		}
		used[i] = true
		cut := p.Cuts[i]
		d, err := m.Difference(blank, cut)
		if err != nil {
			return nil, fmt.Errorf("parts: subtract %q from %q: %w", cut.Name(), blank.Name(), err)
		}
		blank = d
	}
	return blank, nil
}

// DerivationError reports a configuration value or derived dimension that
// cannot describe the part.
type DerivationError struct {
	Component string
	Quantity  string
	Value     float64
	Fields    []string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("parts: %s: %s is %g (from %s), must be positive",
		e.Component, e.Quantity, e.Value, strings.Join(e.Fields, ", "))
}

// requirePositive checks that every named configuration field is finite
// and positive.
func requirePositive(component string, cfg *config.Config, keys ...string) error {
	for _, k := range keys {
		v, ok := cfg.Lookup(k)
		if !ok {
			return fmt.Errorf("parts: %s: unknown configuration key %q", component, k)
		}
		if err := positive(component, k, v, k); err != nil {
			return err
		}
	}
	return nil
}

// positive checks a derived quantity.
func positive(component, quantity string, v float64, fields ...string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &DerivationError{Component: component, Quantity: quantity, Value: v, Fields: fields}
	}
	return nil
}

// hole builds a through-hole cylinder of the given diameter and length.
func hole(m kernel.Modeler, name string, diameter, length float64) (kernel.Solid, error) {
	return m.Cylinder(name, length, diameter/2, holeSegments)
}
