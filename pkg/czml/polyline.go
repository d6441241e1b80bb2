package czml

// Polyline is a line through a list of positions.
type Polyline struct {
	Show                     *bool                     `json:"show,omitempty"`
	Positions                *PositionList             `json:"positions,omitempty"`
	ArcType                  *ArcType                  `json:"arcType,omitempty"`
	Width                    *float64                  `json:"width,omitempty"`
	Granularity              *float64                  `json:"granularity,omitempty"`
	Material                 *PolylineMaterial         `json:"material,omitempty"`
	DepthFailMaterial        *PolylineMaterial         `json:"depthFailMaterial,omitempty"`
	Shadows                  *ShadowModeProperty       `json:"shadows,omitempty"`
	DistanceDisplayCondition *DistanceDisplayCondition `json:"distanceDisplayCondition,omitempty"`
	ClampToGround            *bool                     `json:"clampToGround,omitempty"`
	ZIndex                   *int                      `json:"zIndex,omitempty"`
}

// PolylineMaterial is the fill of a polyline. Set one kind.
type PolylineMaterial struct {
	SolidColor      *SolidColorMaterial      `json:"solidColor,omitempty"`
	PolylineOutline *PolylineOutlineMaterial `json:"polylineOutline,omitempty"`
	PolylineGlow    *PolylineGlowMaterial    `json:"polylineGlow,omitempty"`
	PolylineArrow   *PolylineArrowMaterial   `json:"polylineArrow,omitempty"`
	PolylineDash    *PolylineDashMaterial    `json:"polylineDash,omitempty"`
}

// SolidColorMaterial fills with a single colour.
type SolidColorMaterial struct {
	Color *Color `json:"color,omitempty"`
}

// PolylineOutlineMaterial fills with a colour and draws an outline around it.
type PolylineOutlineMaterial struct {
	Color        *Color   `json:"color,omitempty"`
	OutlineColor *Color   `json:"outlineColor,omitempty"`
	OutlineWidth *float64 `json:"outlineWidth,omitempty"`
}

// PolylineGlowMaterial draws a glowing line.
type PolylineGlowMaterial struct {
	Color      *Color   `json:"color,omitempty"`
	GlowPower  *float64 `json:"glowPower,omitempty"`
	TaperPower *float64 `json:"taperPower,omitempty"`
}

// PolylineArrowMaterial ends the line with an arrow head.
type PolylineArrowMaterial struct {
	Color *Color `json:"color,omitempty"`
}

// PolylineDashMaterial draws a dashed line. DashPattern is a 16 bit mask.
type PolylineDashMaterial struct {
	Color       *Color   `json:"color,omitempty"`
	GapColor    *Color   `json:"gapColor,omitempty"`
	DashLength  *float64 `json:"dashLength,omitempty"`
	DashPattern *int     `json:"dashPattern,omitempty"`
}

// SolidColor is shorthand for a solid colour material.
func SolidColor(c *Color) *PolylineMaterial {
	return &PolylineMaterial{SolidColor: &SolidColorMaterial{Color: c}}
}
