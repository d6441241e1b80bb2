package czml

// Position locates an entity. Set exactly one of the coordinate fields or
// Reference; nothing enforces this, the client uses the first it understands.
type Position struct {
	ReferenceFrame *ReferenceFrame `json:"referenceFrame,omitempty"`
	*Interpolatable
	Cartesian           *Sequence[Cartesian3]   `json:"cartesian,omitempty"`
	CartographicRadians *Sequence[Cartographic] `json:"cartographicRadians,omitempty"`
	CartographicDegrees *Sequence[Cartographic] `json:"cartographicDegrees,omitempty"`
	Reference           *string                 `json:"reference,omitempty"`
}

// Orientation rotates an entity from its local frame.
type Orientation struct {
	*Interpolatable
	UnitQuaternion *Sequence[UnitQuaternion] `json:"unitQuaternion,omitempty"`
	Reference      *string                   `json:"reference,omitempty"`
}

// ViewFrom is the camera offset used when the client tracks the entity, in the
// entity's east-north-up frame.
type ViewFrom struct {
	*Interpolatable
	Cartesian *Sequence[Cartesian3] `json:"cartesian,omitempty"`
	Reference *string               `json:"reference,omitempty"`
}

// PixelOffset shifts a billboard on screen, in pixels.
type PixelOffset struct {
	*Interpolatable
	Cartesian2 *Sequence[Cartesian2] `json:"cartesian2,omitempty"`
	Reference  *string               `json:"reference,omitempty"`
}

// EyeOffset shifts a billboard in eye coordinates, in metres.
type EyeOffset struct {
	*Interpolatable
	Cartesian *Sequence[Cartesian3] `json:"cartesian,omitempty"`
	Reference *string               `json:"reference,omitempty"`
}

// PositionList is the vertex list of a polyline. Vertices carry no time tags.
type PositionList struct {
	Cartesian           List[Cartesian3]   `json:"cartesian,omitempty"`
	CartographicRadians List[Cartographic] `json:"cartographicRadians,omitempty"`
	CartographicDegrees List[Cartographic] `json:"cartographicDegrees,omitempty"`
	// References are "packetId#position" targets, one per vertex.
	References []string `json:"references,omitempty"`
}
