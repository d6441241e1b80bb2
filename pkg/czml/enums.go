package czml

import "fmt"

// enumText returns the literal for v, or ErrUnknownEnum when v is outside names.
func enumText(kind string, names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("%w: %s(%d)", ErrUnknownEnum, kind, v)
	}
	return []byte(names[v]), nil
}

func enumString(kind string, names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}
	return names[v]
}

// ClockRange controls what the clock does when it reaches the end of its interval.
type ClockRange int

const (
	ClockRangeUnbounded ClockRange = iota
	ClockRangeClamped
	ClockRangeLoopStop
)

var clockRangeNames = []string{"UNBOUNDED", "CLAMPED", "LOOP_STOP"}

func (r ClockRange) String() string { return enumString("ClockRange", clockRangeNames, int(r)) }

// MarshalText implements encoding.TextMarshaler.
func (r ClockRange) MarshalText() ([]byte, error) {
	return enumText("ClockRange", clockRangeNames, int(r))
}

// ClockStep controls how the clock advances on each tick.
type ClockStep int

const (
	ClockStepTickDependent ClockStep = iota
	ClockStepSystemClockMultiplier
	ClockStepSystemClock
)

var clockStepNames = []string{"TICK_DEPENDENT", "SYSTEM_CLOCK_MULTIPLIER", "SYSTEM_CLOCK"}

func (s ClockStep) String() string { return enumString("ClockStep", clockStepNames, int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s ClockStep) MarshalText() ([]byte, error) {
	return enumText("ClockStep", clockStepNames, int(s))
}

// ShadowMode says whether an object casts or receives shadows.
type ShadowMode int

const (
	ShadowModeDisabled ShadowMode = iota
	ShadowModeEnabled
	ShadowModeCastOnly
	ShadowModeReceiveOnly
)

var shadowModeNames = []string{"DISABLED", "ENABLED", "CAST_ONLY", "RECEIVE_ONLY"}

func (m ShadowMode) String() string { return enumString("ShadowMode", shadowModeNames, int(m)) }

// MarshalText implements encoding.TextMarshaler.
func (m ShadowMode) MarshalText() ([]byte, error) {
	return enumText("ShadowMode", shadowModeNames, int(m))
}

// InterpolationAlgorithm selects how samples are interpolated.
type InterpolationAlgorithm int

const (
	InterpolationLinear InterpolationAlgorithm = iota
	InterpolationLagrange
	InterpolationHermite
)

var interpolationNames = []string{"LINEAR", "LAGRANGE", "HERMITE"}

func (a InterpolationAlgorithm) String() string {
	return enumString("InterpolationAlgorithm", interpolationNames, int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a InterpolationAlgorithm) MarshalText() ([]byte, error) {
	return enumText("InterpolationAlgorithm", interpolationNames, int(a))
}

// ExtrapolationType selects what a sampled property does outside its samples.
type ExtrapolationType int

const (
	ExtrapolationNone ExtrapolationType = iota
	ExtrapolationHold
	ExtrapolationExtrapolate
)

var extrapolationNames = []string{"NONE", "HOLD", "EXTRAPOLATE"}

func (e ExtrapolationType) String() string {
	return enumString("ExtrapolationType", extrapolationNames, int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e ExtrapolationType) MarshalText() ([]byte, error) {
	return enumText("ExtrapolationType", extrapolationNames, int(e))
}

// ReferenceFrame is the frame a cartesian position is expressed in.
type ReferenceFrame int

const (
	ReferenceFrameFixed ReferenceFrame = iota
	ReferenceFrameInertial
)

var referenceFrameNames = []string{"FIXED", "INERTIAL"}

func (f ReferenceFrame) String() string {
	return enumString("ReferenceFrame", referenceFrameNames, int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f ReferenceFrame) MarshalText() ([]byte, error) {
	return enumText("ReferenceFrame", referenceFrameNames, int(f))
}

// HorizontalOrigin anchors a billboard horizontally relative to its position.
type HorizontalOrigin int

const (
	HorizontalOriginLeft HorizontalOrigin = iota
	HorizontalOriginCenter
	HorizontalOriginRight
)

var horizontalOriginNames = []string{"LEFT", "CENTER", "RIGHT"}

func (o HorizontalOrigin) String() string {
	return enumString("HorizontalOrigin", horizontalOriginNames, int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o HorizontalOrigin) MarshalText() ([]byte, error) {
	return enumText("HorizontalOrigin", horizontalOriginNames, int(o))
}

// VerticalOrigin anchors a billboard vertically relative to its position.
type VerticalOrigin int

const (
	VerticalOriginBaseline VerticalOrigin = iota
	VerticalOriginBottom
	VerticalOriginCenter
	VerticalOriginTop
)

var verticalOriginNames = []string{"BASELINE", "BOTTOM", "CENTER", "TOP"}

func (o VerticalOrigin) String() string {
	return enumString("VerticalOrigin", verticalOriginNames, int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o VerticalOrigin) MarshalText() ([]byte, error) {
	return enumText("VerticalOrigin", verticalOriginNames, int(o))
}

// ArcType is the kind of line drawn between polyline vertices.
type ArcType int

const (
	ArcTypeNone ArcType = iota
	ArcTypeGeodesic
	ArcTypeRhumb
)

var arcTypeNames = []string{"NONE", "GEODESIC", "RHUMB"}

func (a ArcType) String() string { return enumString("ArcType", arcTypeNames, int(a)) }

// MarshalText implements encoding.TextMarshaler.
func (a ArcType) MarshalText() ([]byte, error) {
	return enumText("ArcType", arcTypeNames, int(a))
}
