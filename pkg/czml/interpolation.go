package czml

// Interpolatable holds the interpolation and extrapolation settings shared by
// sampled properties. Properties embed it as *Interpolatable so its fields are
// written next to the property's own keys; a nil bundle writes nothing and a
// nil field inside the bundle is left out.
type Interpolatable struct {
	Epoch                         *Time                   `json:"epoch,omitempty"`
	InterpolationAlgorithm        *InterpolationAlgorithm `json:"interpolationAlgorithm,omitempty"`
	InterpolationDegree           *int                    `json:"interpolationDegree,omitempty"`
	ForwardExtrapolationType      *ExtrapolationType      `json:"forwardExtrapolationType,omitempty"`
	ForwardExtrapolationDuration  *float64                `json:"forwardExtrapolationDuration,omitempty"`
	BackwardExtrapolationType     *ExtrapolationType      `json:"backwardExtrapolationType,omitempty"`
	BackwardExtrapolationDuration *float64                `json:"backwardExtrapolationDuration,omitempty"`
}

// DefaultInterpolatable returns the bundle with every documented default
// written out: LINEAR, degree 1, NONE extrapolation for 1 second each way.
// The epoch is left unset.
func DefaultInterpolatable() *Interpolatable {
	return &Interpolatable{
		InterpolationAlgorithm:        Ptr(InterpolationLinear),
		InterpolationDegree:           Ptr(1),
		ForwardExtrapolationType:      Ptr(ExtrapolationNone),
		ForwardExtrapolationDuration:  Ptr(1.0),
		BackwardExtrapolationType:     Ptr(ExtrapolationNone),
		BackwardExtrapolationDuration: Ptr(1.0),
	}
}

// WithEpoch sets the epoch sample times are relative to and returns i.
func (i *Interpolatable) WithEpoch(epoch Time) *Interpolatable {
	i.Epoch = &epoch
	return i
}
