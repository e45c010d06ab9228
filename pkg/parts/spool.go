package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

// planSpoolHolder stacks the spindle directly on the flange, with no gap or
// overlap, and drills a mount hole through the flange centre.
func planSpoolHolder(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(SpoolHolder, cfg,
		"spool_flange_diameter", "spool_flange_thickness", "spool_spindle_od", "spool_height",
		"mount_hole_diameter",
	); err != nil {
		return nil, err
	}
	if err := positive(SpoolHolder, "spindle wall around the mount hole",
		(cfg.SpoolSpindleOD-cfg.MountHoleDiameter)/2, "spool_spindle_od", "mount_hole_diameter"); err != nil {
		return nil, err
	}

	ft, sh := cfg.SpoolFlangeThickness, cfg.SpoolHeight

	b := &builder{m: m}
	flange := b.cylinder("flange", ft, cfg.SpoolFlangeDiameter/2, hubSegments)
	spindle := b.at(b.cylinder("spindle", sh, cfg.SpoolSpindleOD/2, hubSegments), 0, 0, (ft+sh)/2)
	mount := b.hole("hole", cfg.MountHoleDiameter, ft+holeExtra)

	return b.plan([]kernel.Solid{flange, spindle}, []kernel.Solid{mount})
}
