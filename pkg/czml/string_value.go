package czml

import "encoding/json"

type dualKind uint8

const (
	dualUnset dualKind = iota
	dualLiteral
	dualReference
)

// dual is a literal value or a reference to another packet's property, never both.
type dual struct {
	kind  dualKind
	value string
}

func (d dual) marshal(literalKey string) ([]byte, error) {
	switch d.kind {
	case dualLiteral:
		return json.Marshal(map[string]string{literalKey: d.value})
	case dualReference:
		return json.Marshal(map[string]string{"reference": d.value})
	default:
		return nil, ErrEmptyStringValue
	}
}

// StringValue is a string property given either literally or as a reference
// ("packetId#property") to another packet. It encodes as {"string": ...} or
// {"reference": ...}.
type StringValue struct {
	d dual
}

// LiteralString returns a StringValue holding s.
func LiteralString(s string) *StringValue {
	return &StringValue{d: dual{kind: dualLiteral, value: s}}
}

// ReferenceString returns a StringValue pointing at ref.
func ReferenceString(ref string) *StringValue {
	return &StringValue{d: dual{kind: dualReference, value: ref}}
}

// IsReference reports whether the value is a reference.
func (s StringValue) IsReference() bool { return s.d.kind == dualReference }

// Text returns the literal string or the reference target.
func (s StringValue) Text() string { return s.d.value }

// MarshalJSON implements json.Marshaler.
func (s StringValue) MarshalJSON() ([]byte, error) {
	return s.d.marshal("string")
}

// UriValue is a URI property given literally or as a reference. It encodes as
// {"uri": ...} or {"reference": ...}.
type UriValue struct {
	d dual
}

// Uri returns a UriValue holding uri. Data URIs are accepted as is.
func Uri(uri string) *UriValue {
	return &UriValue{d: dual{kind: dualLiteral, value: uri}}
}

// ReferenceUri returns a UriValue pointing at ref.
func ReferenceUri(ref string) *UriValue {
	return &UriValue{d: dual{kind: dualReference, value: ref}}
}

// IsReference reports whether the value is a reference.
func (u UriValue) IsReference() bool { return u.d.kind == dualReference }

// Text returns the URI or the reference target.
func (u UriValue) Text() string { return u.d.value }

// MarshalJSON implements json.Marshaler.
func (u UriValue) MarshalJSON() ([]byte, error) {
	return u.d.marshal("uri")
}
