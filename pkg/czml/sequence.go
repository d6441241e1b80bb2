package czml

import "encoding/json"

// Sample is one value tagged with a time offset in seconds from an epoch set
// elsewhere (usually the property's Interpolatable.Epoch).
type Sample[T Value] struct {
	Time  float64
	Value T
}

// At builds a Sample.
func At[T Value](t float64, v T) Sample[T] {
	return Sample[T]{Time: t, Value: v}
}

// Sequence holds a property value: either a single constant or a list of
// time-tagged samples. Build one with Constant or Samples.
//
// Both variants encode as a flat JSON array. A constant is its components,
// samples are [t0, c0..., t1, c1..., ...] in insertion order.
type Sequence[T Value] struct {
	constant bool
	value    T
	samples  []Sample[T]
}

// Constant returns a Sequence holding v with no time tag.
func Constant[T Value](v T) *Sequence[T] {
	return &Sequence[T]{constant: true, value: v}
}

// Samples returns a Sequence holding the given samples in order. Sample times
// are not checked for ordering.
func Samples[T Value](samples ...Sample[T]) *Sequence[T] {
	s := make([]Sample[T], len(samples))
	copy(s, samples)
	return &Sequence[T]{samples: s}
}

// IsConstant reports whether the sequence was built with Constant.
func (s *Sequence[T]) IsConstant() bool {
	return s.constant
}

// Value returns the constant value. ok is false for sampled sequences.
func (s *Sequence[T]) Value() (v T, ok bool) {
	if !s.constant {
		return v, false
	}
	return s.value, true
}

// Samples returns a copy of the samples. It is empty for constants.
func (s *Sequence[T]) Samples() []Sample[T] {
	out := make([]Sample[T], len(s.samples))
	copy(out, s.samples)
	return out
}

// Len is the number of values held: 1 for a constant, the sample count otherwise.
func (s *Sequence[T]) Len() int {
	if s.constant {
		return 1
	}
	return len(s.samples)
}

// Flatten returns the array the sequence encodes to.
func (s *Sequence[T]) Flatten() []float64 {
	if s.constant {
		return s.value.AppendComponents(make([]float64, 0, s.value.Arity()))
	}

	var zero T
	out := make([]float64, 0, len(s.samples)*(1+zero.Arity()))
	for _, sample := range s.samples {
		out = append(out, sample.Time)
		out = sample.Value.AppendComponents(out)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (s *Sequence[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Flatten())
}

// List is a plain list of values without time tags, such as polyline vertices.
// It encodes as the concatenation of each value's components.
type List[T Value] []T

// Flatten returns the array the list encodes to.
func (l List[T]) Flatten() []float64 {
	var zero T
	out := make([]float64, 0, len(l)*zero.Arity())
	for _, v := range l {
		out = v.AppendComponents(out)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (l List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Flatten())
}
