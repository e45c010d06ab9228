// Package config holds the shared dimensional parameters of the vial-label
// fixture. A Config is loaded once per run and passed by pointer to every
// part generator; nothing mutates it after Load returns.
package config

// Config is the flat record of millimetre parameters read from the
// [default] section of the configuration document.
//
// MinBendRadius and FilletRadius describe features of the BREP models and
// are carried for completeness; the mesh generators do not read them.
type Config struct {
	VialDiameter          float64 `toml:"vial_diameter" validate:"gte=0.1,lte=500"`
	VialHeight            float64 `toml:"vial_height" validate:"gte=0.1,lte=500"`
	LabelWidth            float64 `toml:"label_width" validate:"gte=0.1,lte=500,ltfield=FrameWidth"`
	LabelHeight           float64 `toml:"label_height" validate:"gte=0.1,lte=500,ltfield=VialHeight"`
	LabelOffsetFromBottom float64 `toml:"label_offset_from_bottom"`
	LabelThickness        float64 `toml:"label_thickness" validate:"gte=0.01,lte=500"`
	MinBendRadius         float64 `toml:"min_bend_radius"`
	WallThickness         float64 `toml:"wall_thickness" validate:"gte=0.8,lte=500"`
	BaseThickness         float64 `toml:"base_thickness" validate:"gte=0.1,lte=500"`
	MountHoleDiameter     float64 `toml:"mount_hole_diameter" validate:"gte=0.1,lte=500"`
	FilletRadius          float64 `toml:"fillet_radius"`

	FrameLength        float64 `toml:"frame_length" validate:"gte=0.1,lte=500"`
	FrameWidth         float64 `toml:"frame_width" validate:"gte=0.1,lte=500"`
	FrameWallHeight    float64 `toml:"frame_wall_height" validate:"gte=0.1,lte=500"`
	FrameWallThickness float64 `toml:"frame_wall_thickness" validate:"gte=0.1,lte=500"`

	PeelChannelWidthClearance float64 `toml:"peel_channel_width_clearance"`
	PeelBodyDepth             float64 `toml:"peel_body_depth" validate:"gte=0.1,lte=500"`
	PeelBodyHeightRear        float64 `toml:"peel_body_height_rear" validate:"gte=0.1,lte=500"`
	PeelMountHoleSpacing      float64 `toml:"peel_mount_hole_spacing"`

	CradleBaseHeight        float64 `toml:"cradle_base_height"`
	CradleVBlockHeight      float64 `toml:"cradle_v_block_height"`
	CradleMountSlotSpacingX float64 `toml:"cradle_mount_slot_spacing_x"`
	CradleMountSlotSpacingY float64 `toml:"cradle_mount_slot_spacing_y"`

	SpoolSpindleOD       float64 `toml:"spool_spindle_od" validate:"gte=0.1,lte=500"`
	SpoolFlangeDiameter  float64 `toml:"spool_flange_diameter" validate:"gte=0.1,lte=500,gtfield=SpoolSpindleOD"`
	SpoolFlangeThickness float64 `toml:"spool_flange_thickness" validate:"gte=0.1,lte=500"`
	SpoolHeight          float64 `toml:"spool_height" validate:"gte=0.1,lte=500"`

	DancerArmLength    float64 `toml:"dancer_arm_length" validate:"gte=0.1,lte=500"`
	DancerArmWidth     float64 `toml:"dancer_arm_width" validate:"gte=0.1,lte=500"`
	DancerArmThickness float64 `toml:"dancer_arm_thickness" validate:"gte=0.1,lte=500"`
	PivotBore          float64 `toml:"pivot_bore" validate:"gte=0.1,lte=500"`
	BearingOD          float64 `toml:"bearing_od" validate:"gte=0.1,lte=500,gtfield=BearingID"`
	BearingID          float64 `toml:"bearing_id" validate:"gte=0.1,lte=500"`

	BracketBaseWidth float64 `toml:"bracket_base_width" validate:"gte=0.1,lte=500"`
	BracketBaseDepth float64 `toml:"bracket_base_depth" validate:"gte=0.1,lte=500"`
	BracketHeight    float64 `toml:"bracket_height" validate:"gte=0.1,lte=500"`
	PivotPostHeight  float64 `toml:"pivot_post_height" validate:"gte=0.1,lte=500"`
}

// field binds a document key to the Config member it fills.
type field struct {
	key string
	ptr *float64
}

// fields lists every key in document order. Load requires all of them.
func (c *Config) fields() []field {
	return []field{
		{"vial_diameter", &c.VialDiameter},
		{"vial_height", &c.VialHeight},
		{"label_width", &c.LabelWidth},
		{"label_height", &c.LabelHeight},
		{"label_offset_from_bottom", &c.LabelOffsetFromBottom},
		{"label_thickness", &c.LabelThickness},
		{"min_bend_radius", &c.MinBendRadius},
		{"wall_thickness", &c.WallThickness},
		{"base_thickness", &c.BaseThickness},
		{"mount_hole_diameter", &c.MountHoleDiameter},
		{"fillet_radius", &c.FilletRadius},
		{"frame_length", &c.FrameLength},
		{"frame_width", &c.FrameWidth},
		{"frame_wall_height", &c.FrameWallHeight},
		{"frame_wall_thickness", &c.FrameWallThickness},
		{"peel_channel_width_clearance", &c.PeelChannelWidthClearance},
		{"peel_body_depth", &c.PeelBodyDepth},
		{"peel_body_height_rear", &c.PeelBodyHeightRear},
		{"peel_mount_hole_spacing", &c.PeelMountHoleSpacing},
		{"cradle_base_height", &c.CradleBaseHeight},
		{"cradle_v_block_height", &c.CradleVBlockHeight},
		{"cradle_mount_slot_spacing_x", &c.CradleMountSlotSpacingX},
		{"cradle_mount_slot_spacing_y", &c.CradleMountSlotSpacingY},
		{"spool_spindle_od", &c.SpoolSpindleOD},
		{"spool_flange_diameter", &c.SpoolFlangeDiameter},
		{"spool_flange_thickness", &c.SpoolFlangeThickness},
		{"spool_height", &c.SpoolHeight},
		{"dancer_arm_length", &c.DancerArmLength},
		{"dancer_arm_width", &c.DancerArmWidth},
		{"dancer_arm_thickness", &c.DancerArmThickness},
		{"pivot_bore", &c.PivotBore},
		{"bearing_od", &c.BearingOD},
		{"bearing_id", &c.BearingID},
		{"bracket_base_width", &c.BracketBaseWidth},
		{"bracket_base_depth", &c.BracketBaseDepth},
		{"bracket_height", &c.BracketHeight},
		{"pivot_post_height", &c.PivotPostHeight},
	}
}

// Keys returns every required document key in declaration order.
func Keys() []string {
	var c Config
	fs := c.fields()
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.key
	}
	return keys
}

// Lookup returns the value stored under a document key.
func (c *Config) Lookup(key string) (float64, bool) {
	for _, f := range c.fields() {
		if f.key == key {
			return *f.ptr, true
		}
	}
	return 0, false
}

// Default returns the reference fixture for 16 mm vials, identical to the
// [default] section of the config.toml shipped with the repository.
func Default() *Config {
	return &Config{
		VialDiameter:          16.0,
		VialHeight:            38.5,
		LabelWidth:            40.0,
		LabelHeight:           25.0,
		LabelOffsetFromBottom: 5.0,
		LabelThickness:        0.08,
		MinBendRadius:         8.0,
		WallThickness:         2.5,
		BaseThickness:         5.0,
		MountHoleDiameter:     3.2,
		FilletRadius:          1.0,

		FrameLength:        200.0,
		FrameWidth:         120.0,
		FrameWallHeight:    30.0,
		FrameWallThickness: 4.0,

		PeelChannelWidthClearance: 1.0,
		PeelBodyDepth:             25.0,
		PeelBodyHeightRear:        15.0,
		PeelMountHoleSpacing:      30.0,

		CradleBaseHeight:        5.0,
		CradleVBlockHeight:      18.0,
		CradleMountSlotSpacingX: 36.0,
		CradleMountSlotSpacingY: 20.0,

		SpoolSpindleOD:       24.5,
		SpoolFlangeDiameter:  40.0,
		SpoolFlangeThickness: 3.0,
		SpoolHeight:          30.0,

		DancerArmLength:    60.0,
		DancerArmWidth:     12.0,
		DancerArmThickness: 5.0,
		PivotBore:          8.0,
		BearingOD:          22.0,
		BearingID:          8.0,

		BracketBaseWidth: 25.0,
		BracketBaseDepth: 20.0,
		BracketHeight:    25.0,
		PivotPostHeight:  40.0,
	}
}
