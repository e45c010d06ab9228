package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

const (
	// cradleLengthShort is how much shorter than the vial the cradle is.
	cradleLengthShort = 3.5
	// cradleBaseOverhang is the base length beyond the V-block, for the holes.
	cradleBaseOverhang = 18.0
	// cradleBaseMargin is the base width beyond the vial diameter.
	cradleBaseMargin = 20.0
	// cradleGrooveScale sizes the square groove prism from the vial diameter.
	cradleGrooveScale = 1.5
	// cradleGrooveSink places the prism centre below the block top, as a
	// fraction of the prism side, setting the height of the V apex.
	cradleGrooveSink = 0.35
	// cradleHoleDiameter is fixed and does not follow mount_hole_diameter.
	cradleHoleDiameter = 3.4
)

// planVialCradle builds a V-block on a base plate. The V is a square prism
// turned 45 degrees about X and sunk into the block. The origin is the base
// plate centroid.
func planVialCradle(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(VialCradle, cfg,
		"vial_diameter", "vial_height", "cradle_base_height", "cradle_v_block_height",
		"cradle_mount_slot_spacing_x", "cradle_mount_slot_spacing_y",
	); err != nil {
		return nil, err
	}

	length := cfg.VialHeight - cradleLengthShort
	if err := positive(VialCradle, "cradle length", length, "vial_height"); err != nil {
		return nil, err
	}
	baseL := length + cradleBaseOverhang
	baseW := cfg.VialDiameter + cradleBaseMargin
	baseH, blockH := cfg.CradleBaseHeight, cfg.CradleVBlockHeight
	sx, sy := cfg.CradleMountSlotSpacingX, cfg.CradleMountSlotSpacingY

	if err := positive(VialCradle, "hole grid margin along X", baseL/2-sx/2-cradleHoleDiameter/2,
		"vial_height", "cradle_mount_slot_spacing_x"); err != nil {
		return nil, err
	}
	if err := positive(VialCradle, "hole grid margin along Y", baseW/2-sy/2-cradleHoleDiameter/2,
		"vial_diameter", "cradle_mount_slot_spacing_y"); err != nil {
		return nil, err
	}

	cut := cfg.VialDiameter * cradleGrooveScale

	b := &builder{m: m}
	base := b.box("base", baseL, baseW, baseH)
	block := b.at(b.box("v_body", length, baseW, blockH), 0, 0, baseH/2+blockH/2)
	groove := b.at(b.rotate(b.box("groove", length+holeExtra, cut, cut), 45, 0, 0),
		0, 0, baseH+blockH-cut*cradleGrooveSink)

	row := b.pattern(b.hole("hole", cradleHoleDiameter, baseH+holeExtra), sx, 0, 0, 2)
	holes := b.at(b.pattern(row, 0, sy, 0, 2), -sx/2, -sy/2, 0)

	return b.plan([]kernel.Solid{base, block}, []kernel.Solid{groove, holes})
}
