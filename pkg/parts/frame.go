package parts

import (
	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
)

// Fixed frame layout offsets in mm. Positions are measured from the plate
// edges or from the peel-plate wall and are not configurable.
const (
	frameWallEdgeGap    = 5.0  // wall to +X edge
	frameCradleFromWall = 35.0 // cradle centre, -X of the wall
	frameGuideFromWall  = 70.0 // guide bracket centre, -X of the wall
	frameGuideFromEdge  = 25.0 // guide bracket centre from -Y edge
	frameDancerFromEdge = 80.0 // pivot post from -X edge
	frameDancerFromSide = 35.0 // pivot post from -Y edge
	frameSpoolFromEdge  = 30.0 // spool hole from -X and -Y edges
	frameCradleY        = 25.0 // cradle centre Y
	frameCornerInset    = 8.0
	frameGuidePitch     = 15.0
	frameCollarGrowth   = 3.0 // collar radius over the post radius
	frameCollarHeight   = 6.0
	spindleHoleSlack    = 0.5 // diametral clearance around the spool spindle
)

// planFrame lays out the base plate with the peel-plate wall and dancer
// pivot post, and drills the spool, guide, corner and cradle holes. The
// origin is the plate centroid.
func planFrame(m kernel.Modeler, cfg *config.Config) (*Plan, error) {
	if err := requirePositive(MainFrame, cfg,
		"frame_length", "frame_width", "base_thickness", "frame_wall_height", "frame_wall_thickness",
		"pivot_bore", "pivot_post_height", "spool_spindle_od", "mount_hole_diameter",
		"cradle_mount_slot_spacing_x", "cradle_mount_slot_spacing_y",
	); err != nil {
		return nil, err
	}

	L, W, T := cfg.FrameLength, cfg.FrameWidth, cfg.BaseThickness
	wallT, wallH := cfg.FrameWallThickness, cfg.FrameWallHeight
	postH := cfg.PivotPostHeight

	wallX := L/2 - wallT/2 - frameWallEdgeGap
	if err := positive(MainFrame, "plate length behind the wall", L-wallT-frameWallEdgeGap,
		"frame_length", "frame_wall_thickness"); err != nil {
		return nil, err
	}
	if err := positive(MainFrame, "corner hole span along X", L-2*frameCornerInset, "frame_length"); err != nil {
		return nil, err
	}
	if err := positive(MainFrame, "corner hole span along Y", W-2*frameCornerInset, "frame_width"); err != nil {
		return nil, err
	}

	cradleX, cradleY := wallX-frameCradleFromWall, frameCradleY
	guideX, guideY := wallX-frameGuideFromWall, -W/2+frameGuideFromEdge
	dancerX, dancerY := -L/2+frameDancerFromEdge, -W/2+frameDancerFromSide
	spoolX, spoolY := -L/2+frameSpoolFromEdge, -W/2+frameSpoolFromEdge
	through := T + holeExtra

	b := &builder{m: m}
	base := b.box("base", L, W, T)
	wall := b.at(b.box("wall", wallT, W/2, wallH), wallX, 0, T/2+wallH/2)
	post := b.at(b.cylinder("post", postH, cfg.PivotBore/2, holeSegments), dancerX, dancerY, T/2+postH/2)
	collar := b.at(b.cylinder("collar", frameCollarHeight, cfg.PivotBore/2+frameCollarGrowth, holeSegments),
		dancerX, dancerY, T/2+frameCollarHeight/2)

	spoolHole := b.at(b.hole("spool_hole", cfg.SpoolSpindleOD+spindleHoleSlack, through), spoolX, spoolY, 0)

	guideHoles := b.at(b.pattern(b.hole("guide_hole", cfg.MountHoleDiameter, through), frameGuidePitch, 0, 0, 2),
		guideX-frameGuidePitch/2, guideY, 0)

	corner := b.hole("corner_hole", cfg.MountHoleDiameter, through)
	cx, cy := L/2-frameCornerInset, W/2-frameCornerInset
	c1 := b.at(corner, -cx, -cy, 0)
	c2 := b.at(corner, cx, -cy, 0)
	c3 := b.at(corner, -cx, cy, 0)
	c4 := b.at(corner, cx, cy, 0)

	cradle := b.hole("cradle_hole", cfg.MountHoleDiameter, through)
	sx, sy := cfg.CradleMountSlotSpacingX/2, cfg.CradleMountSlotSpacingY/2
	ch1 := b.at(cradle, cradleX-sx, cradleY-sy, 0)
	ch2 := b.at(cradle, cradleX+sx, cradleY-sy, 0)
	ch3 := b.at(cradle, cradleX-sx, cradleY+sy, 0)
	ch4 := b.at(cradle, cradleX+sx, cradleY+sy, 0)

	return b.plan(
		[]kernel.Solid{base, wall, post, collar},
		[]kernel.Solid{spoolHole, guideHoles, c1, c2, c3, c4, ch1, ch2, ch3, ch4},
	)
}
