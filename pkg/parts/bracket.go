package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

const (
	// bracketPinClearance is the gap between the bearing and the top edge.
	bracketPinClearance = 2.0
	// bracketHolePitch is fixed and does not follow any configuration key.
	bracketHolePitch = 15.0
)

// planGuideRollerBracket builds an L-shaped bracket: a base plate with a
// wall along its -Y edge carrying the roller pin.
func planGuideRollerBracket(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(GuideRollerBracket, cfg,
		"bracket_base_width", "bracket_base_depth", "bracket_height", "wall_thickness",
		"pivot_bore", "bearing_od", "mount_hole_diameter",
	); err != nil {
		return nil, err
	}

	bw, bd, h := cfg.BracketBaseWidth, cfg.BracketBaseDepth, cfg.BracketHeight
	wt := cfg.WallThickness
	pinR := cfg.PivotBore / 2
	pinZ := wt + h - cfg.BearingOD/2 - bracketPinClearance
	wallY := -bd/2 + wt/2

	if err := positive(GuideRollerBracket, "base depth in front of the wall", bd-wt,
		"bracket_base_depth", "wall_thickness"); err != nil {
		return nil, err
	}
	if err := positive(GuideRollerBracket, "pin hole clearance above the base", pinZ-pinR-wt/2,
		"bracket_height", "bearing_od", "pivot_bore", "wall_thickness"); err != nil {
		return nil, err
	}
	if err := positive(GuideRollerBracket, "pin hole clearance below the top edge", wt/2+h-pinZ-pinR,
		"bearing_od", "pivot_bore", "wall_thickness"); err != nil {
		return nil, err
	}
	if err := positive(GuideRollerBracket, "mount hole edge margin", bw/2-bracketHolePitch/2-cfg.MountHoleDiameter/2,
		"bracket_base_width", "mount_hole_diameter"); err != nil {
		return nil, err
	}

	through := wt + holeExtra

	b := &builder{m: m}
	base := b.box("base", bw, bd, wt)
	wall := b.at(b.box("wall", bw, wt, h), 0, wallY, wt/2+h/2)
	pin := b.at(b.rotate(b.hole("pin_hole", cfg.PivotBore, through), 90, 0, 0), 0, wallY, pinZ)
	mounts := b.at(b.pattern(b.hole("mount_hole", cfg.MountHoleDiameter, through), bracketHolePitch, 0, 0, 2),
		-bracketHolePitch/2, 0, 0)

	return b.plan([]kernel.Solid{base, wall}, []kernel.Solid{pin, mounts})
}
