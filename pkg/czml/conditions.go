package czml

// ShadowModeProperty says whether a graphic casts or receives shadows.
type ShadowModeProperty struct {
	ShadowMode *ShadowMode `json:"shadowMode,omitempty"`
	Reference  *string     `json:"reference,omitempty"`
}

// Shadows is shorthand for a constant shadow mode.
func Shadows(mode ShadowMode) *ShadowModeProperty {
	return &ShadowModeProperty{ShadowMode: &mode}
}

// DistanceDisplayCondition limits the camera distances a graphic is shown at.
type DistanceDisplayCondition struct {
	*Interpolatable
	DistanceDisplayCondition *Sequence[DistanceRange] `json:"distanceDisplayCondition,omitempty"`
	Reference                *string                  `json:"reference,omitempty"`
}

// VisibleBetween is shorthand for a constant display distance range.
func VisibleBetween(near, far float64) *DistanceDisplayCondition {
	return &DistanceDisplayCondition{
		DistanceDisplayCondition: Constant(DistanceRange{Near: near, Far: far}),
	}
}

// NearFarScalarProperty scales a value by camera distance.
type NearFarScalarProperty struct {
	*Interpolatable
	NearFarScalar *Sequence[NearFarScalar] `json:"nearFarScalar,omitempty"`
	Reference     *string                  `json:"reference,omitempty"`
}
