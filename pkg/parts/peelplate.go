package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

// peelChannelDepth is the depth of the label feed slot in the top face.
const peelChannelDepth = 1.5

// planPeelPlate cuts a feed channel one clearance wider than the label
// into the top of the body, flush with the top face.
func planPeelPlate(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(PeelPlate, cfg,
		"label_width", "wall_thickness", "peel_body_depth", "peel_body_height_rear",
		"peel_channel_width_clearance", "mount_hole_diameter", "peel_mount_hole_spacing",
	); err != nil {
		return nil, err
	}

	depth, height := cfg.PeelBodyDepth, cfg.PeelBodyHeightRear
	bodyW := cfg.LabelWidth + 2*cfg.WallThickness
	channelW := cfg.LabelWidth + cfg.PeelChannelWidthClearance
	spacing := cfg.PeelMountHoleSpacing

	if err := positive(PeelPlate, "channel side wall", (bodyW-channelW)/2,
		"wall_thickness", "peel_channel_width_clearance"); err != nil {
		return nil, err
	}
	if err := positive(PeelPlate, "floor under the channel", height-peelChannelDepth,
		"peel_body_height_rear"); err != nil {
		return nil, err
	}
	if err := positive(PeelPlate, "mount hole edge margin", bodyW/2-spacing/2-cfg.MountHoleDiameter/2,
		"label_width", "wall_thickness", "peel_mount_hole_spacing", "mount_hole_diameter"); err != nil {
		return nil, err
	}

	b := &builder{m: m}
	body := b.box("body", bodyW, depth, height)
	channel := b.at(b.box("channel", channelW, depth+holeExtra, peelChannelDepth), 0, 0, height/2-peelChannelDepth/2)
	holes := b.at(b.pattern(b.hole("hole", cfg.MountHoleDiameter, depth+holeExtra), spacing, 0, 0, 2), -spacing/2, 0, 0)

	return b.plan([]kernel.Solid{body}, []kernel.Solid{channel, holes})
}
