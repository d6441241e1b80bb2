package czml

// Billboard is a screen-aligned image drawn at the entity's position.
type Billboard struct {
	Show                     *bool                     `json:"show,omitempty"`
	Image                    *UriValue                 `json:"image,omitempty"`
	Scale                    *float64                  `json:"scale,omitempty"`
	PixelOffset              *PixelOffset              `json:"pixelOffset,omitempty"`
	EyeOffset                *EyeOffset                `json:"eyeOffset,omitempty"`
	HorizontalOrigin         *HorizontalOrigin         `json:"horizontalOrigin,omitempty"`
	VerticalOrigin           *VerticalOrigin           `json:"verticalOrigin,omitempty"`
	Color                    *Color                    `json:"color,omitempty"`
	Rotation                 *float64                  `json:"rotation,omitempty"`
	SizeInMeters             *bool                     `json:"sizeInMeters,omitempty"`
	Width                    *float64                  `json:"width,omitempty"`
	Height                   *float64                  `json:"height,omitempty"`
	ScaleByDistance          *NearFarScalarProperty    `json:"scaleByDistance,omitempty"`
	DistanceDisplayCondition *DistanceDisplayCondition `json:"distanceDisplayCondition,omitempty"`
}
