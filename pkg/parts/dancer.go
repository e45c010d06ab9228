package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

const (
	pivotHubExtra   = 2.0 // pivot hub radius beyond bore/2 + wall
	springHoleR     = 1.5
	springHoleX     = 10.0
	springEdgeInset = 1.5 // spring hole centre from the bar edge
)

// planDancerArm joins a pivot hub and a roller hub with a flat bar. The
// origin is the pivot axis; the roller sits at +X arm length.
func planDancerArm(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(DancerArm, cfg,
		"dancer_arm_length", "dancer_arm_width", "dancer_arm_thickness", "pivot_bore",
		"bearing_od", "bearing_id", "wall_thickness",
	); err != nil {
		return nil, err
	}

	L, W, T := cfg.DancerArmLength, cfg.DancerArmWidth, cfg.DancerArmThickness
	pivotR := cfg.PivotBore/2 + cfg.WallThickness + pivotHubExtra
	rollerR := cfg.BearingOD/2 + cfg.WallThickness

	if err := positive(DancerArm, "roller hub wall around the bearing bore", rollerR-cfg.BearingID/2,
		"bearing_od", "bearing_id", "wall_thickness"); err != nil {
		return nil, err
	}
	if err := positive(DancerArm, "spring hole margin to the bar edge", W/2-springEdgeInset-springHoleR,
		"dancer_arm_width"); err != nil {
		return nil, err
	}
	if err := positive(DancerArm, "spring hole clearance from the pivot bore", springHoleX-springHoleR-cfg.PivotBore/2,
		"pivot_bore"); err != nil {
		return nil, err
	}

	through := T + holeExtra

	b := &builder{m: m}
	pivotHub := b.cylinder("pivot_hub", T, pivotR, hubSegments)
	rollerHub := b.at(b.cylinder("roller_hub", T, rollerR, hubSegments), L, 0, 0)
	bar := b.at(b.box("bar", L, W, T), L/2, 0, 0)

	pivotHole := b.hole("pivot_hole", cfg.PivotBore, through)
	bearingHole := b.at(b.hole("bearing_hole", cfg.BearingID, through), L, 0, 0)
	springHole := b.at(b.hole("spring_hole", 2*springHoleR, through), springHoleX, W/2-springEdgeInset, 0)

	return b.plan(
		[]kernel.Solid{pivotHub, rollerHub, bar},
		[]kernel.Solid{pivotHole, bearingHole, springHole},
	)
}
