package czml

import "errors"

var (
	// ErrWrite is returned by Document.Encode when the destination writer fails.
	ErrWrite = errors.New("czml: write failed")

	// ErrMarshal is returned by Document.Encode when a packet cannot be encoded.
	ErrMarshal = errors.New("czml: marshal failed")

	// ErrUnknownEnum is returned when an enumeration holds a value outside its set.
	ErrUnknownEnum = errors.New("czml: unknown enumeration value")

	// ErrEmptyStringValue is returned when a StringValue or UriValue was not
	// built with one of its constructors.
	ErrEmptyStringValue = errors.New("czml: string value has neither literal nor reference")

	// ErrInvalidInterval is returned by TimeInterval.Validate when stop is not
	// after start.
	ErrInvalidInterval = errors.New("czml: interval stop is not after start")
)
