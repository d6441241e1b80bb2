// Package czml builds CZML documents: ordered packets describing time-dynamic
// scene entities for a Cesium client.
//
// Properties are either a constant value or a list of time-tagged samples
// (see Sequence). Optional fields are pointers and are omitted from the output
// when nil.
package czml

// Value is a fixed-arity numeric tuple that can be flattened into a CZML array.
type Value interface {
	// AppendComponents appends the value's components to dst in their fixed order.
	AppendComponents(dst []float64) []float64
	// Arity is the number of components AppendComponents appends.
	Arity() int
}

// Cartesian2 is a planar offset, e.g. a billboard pixel offset.
type Cartesian2 struct {
	X float64
	Y float64
}

func (c Cartesian2) AppendComponents(dst []float64) []float64 {
	return append(dst, c.X, c.Y)
}

func (Cartesian2) Arity() int { return 2 }

// Cartesian3 is a position or offset in a three dimensional frame, in metres.
type Cartesian3 struct {
	X float64
	Y float64
	Z float64
}

func (c Cartesian3) AppendComponents(dst []float64) []float64 {
	return append(dst, c.X, c.Y, c.Z)
}

func (Cartesian3) Arity() int { return 3 }

// Cartographic is a WGS84 position. Longitude and latitude are in degrees or
// radians depending on the property key it is assigned to; height is in metres.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

func (c Cartographic) AppendComponents(dst []float64) []float64 {
	return append(dst, c.Longitude, c.Latitude, c.Height)
}

func (Cartographic) Arity() int { return 3 }

// UnitQuaternion is a rotation, serialized as [x, y, z, w].
type UnitQuaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

func (q UnitQuaternion) AppendComponents(dst []float64) []float64 {
	return append(dst, q.X, q.Y, q.Z, q.W)
}

func (UnitQuaternion) Arity() int { return 4 }

// IdentityQuaternion is the rotation that leaves an orientation unchanged.
var IdentityQuaternion = UnitQuaternion{W: 1}

// Rgba is a colour with 0-255 components.
type Rgba struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

func (c Rgba) AppendComponents(dst []float64) []float64 {
	return append(dst, c.Red, c.Green, c.Blue, c.Alpha)
}

func (Rgba) Arity() int { return 4 }

// Rgbaf is a colour with 0-1 components.
type Rgbaf struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

func (c Rgbaf) AppendComponents(dst []float64) []float64 {
	return append(dst, c.Red, c.Green, c.Blue, c.Alpha)
}

func (Rgbaf) Arity() int { return 4 }

// NearFarScalar maps a value at a near distance and another at a far distance.
type NearFarScalar struct {
	NearDistance float64
	NearValue    float64
	FarDistance  float64
	FarValue     float64
}

func (n NearFarScalar) AppendComponents(dst []float64) []float64 {
	return append(dst, n.NearDistance, n.NearValue, n.FarDistance, n.FarValue)
}

func (NearFarScalar) Arity() int { return 4 }

// DistanceRange is the camera distance interval in which an object is shown.
type DistanceRange struct {
	Near float64
	Far  float64
}

func (d DistanceRange) AppendComponents(dst []float64) []float64 {
	return append(dst, d.Near, d.Far)
}

func (DistanceRange) Arity() int { return 2 }

// Ptr returns a pointer to v. It keeps builder-style packet literals short:
//
//	czml.Clock{Multiplier: czml.Ptr(1.0)}
func Ptr[T any](v T) *T {
	return &v
}
